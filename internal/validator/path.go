package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonshape/internal/models"
)

const rootPath = "$"

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// keySegment renders a text key as a path segment.
func keySegment(key string) string {
	if identifierRegex.MatchString(key) {
		return "." + key
	}
	return "[" + strconv.Quote(key) + "]"
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// rawKeySegment renders a key of any kind, used to point at non-text keys.
func rawKeySegment(key reflect.Value) string {
	return "[" + keyString(key) + "]"
}

// keyString renders a key for sorting and diagnostics.
func keyString(key reflect.Value) string {
	key = models.Indirect(key)
	if !key.IsValid() {
		return "null"
	}
	if key.Kind() == reflect.String {
		return key.String()
	}
	if key.CanInterface() {
		return fmt.Sprint(key.Interface())
	}
	return key.Type().String()
}

func joinPath(segments []string) string {
	var b strings.Builder
	b.WriteString(rootPath)
	for _, s := range segments {
		b.WriteString(s)
	}
	return b.String()
}
