package generator

// pythonSpecialName maps each supported operator token to the Python special
// method name the binding registers under. The switch is a fixed, exhaustive
// lookup over the parser's supported operator set; an unmapped token reports
// false and becomes a GenerationError rather than being dropped.
func pythonSpecialName(token string) (string, bool) {
	switch token {
	case "+":
		return "__add__", true
	case "-":
		return "__sub__", true
	case "*":
		return "__mul__", true
	case "/":
		return "__truediv__", true
	case "==":
		return "__eq__", true
	case "!=":
		return "__ne__", true
	case "<":
		return "__lt__", true
	case ">":
		return "__gt__", true
	case "<=":
		return "__le__", true
	case ">=":
		return "__ge__", true
	case "[]":
		return "__getitem__", true
	case "()":
		return "__call__", true
	case "<<":
		return "__repr__", true
	}
	return "", false
}
