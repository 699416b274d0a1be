package rules

import "fmt"

func msgWrongCase(actual, canonical string) string {
	return fmt.Sprintf("Wrong tag: %s provided, %s expected", actual, canonical)
}

func msgParenthesis(raw string) string {
	return fmt.Sprintf("Data provider should not end with \"()\". \"%s\" provided.", raw)
}

func msgMalformed(test string) string {
	return fmt.Sprintf("Wrong tag specified for test %s, it must be followed by a space and a method name.", test)
}

func msgNotFound(name string) string {
	return fmt.Sprintf("Data provider method \"%s\" not found.", name)
}

func msgNotPublic(name string) string {
	return fmt.Sprintf("Data provider method \"%s\" must be public.", name)
}

func msgNoVisibility(name string) string {
	return fmt.Sprintf("Data provider method \"%s\" visibility should be specified.", name)
}

func msgTestPrefix(prefix, name string) string {
	return fmt.Sprintf("Data provider must not start with \"%s\". \"%s\" provided.", prefix, name)
}

func msgNotStatic(name string) string {
	return fmt.Sprintf("Data provider method \"%s\" will need to be converted to static in future.", name)
}

func msgBadReturn(name string) string {
	return fmt.Sprintf("Data provider method \"%s\" must return an array, a Generator or an Iterable.", name)
}
