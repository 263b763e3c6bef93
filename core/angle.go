package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAngle evaluates a gate parameter in radians. It understands float
// literals, pi, leading signs, parentheses around a whole term, and chains
// of * and / such as "-3*pi/4". The result must be finite.
func ParseAngle(expr string) (float64, error) {
	v, err := evalAngle(strings.ReplaceAll(strings.TrimSpace(expr), " ", ""))
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("not a finite number")
	}
	if err != nil {
		return 0, &TypeMismatchError{
			Description: fmt.Sprintf("cannot evaluate angle %q: %v", expr, err),
		}
	}
	return v, nil
}

func evalAngle(s string) (float64, error) {
	sign := 1.0
	for {
		if inner, ok := outerParens(s); ok {
			s = inner
			continue
		}
		if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
			if s[0] == '-' {
				sign = -sign
			}
			s = s[1:]
			continue
		}
		break
	}

	value, op := 1.0, byte('*')
	start, depth := 0, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				continue
			case '*', '/':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}

		f, err := angleFactor(s[start:i])
		if err != nil {
			return 0, err
		}

		if op == '*' {
			value *= f
		} else {
			if f == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			value /= f
		}

		if i < len(s) {
			op = s[i]
		}
		start = i + 1
	}

	return sign * value, nil
}

func angleFactor(s string) (float64, error) {
	switch s {
	case "":
		return 0, fmt.Errorf("missing operand")
	case "pi", "π":
		return math.Pi, nil
	}

	if _, ok := outerParens(s); ok || s[0] == '-' || s[0] == '+' {
		if s != "-" && s != "+" && !isNumber(s) {
			return evalAngle(s)
		}
	}

	return strconv.ParseFloat(s, 64)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// outerParens strips one pair of parentheses enclosing all of s.
func outerParens(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s, false
	}

	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			return s, false
		}
	}

	return s[1 : len(s)-1], true
}
