package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonshape/internal/parser"
	"github.com/mcncl/jsonshape/internal/validator"
)

// generateNestedJSON creates a deeply nested document for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"timestamp":  time.Now().Format(time.RFC3339),
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})

	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}

	return result
}

// generateWideJSON creates a document with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("float_field_%d", i)] = float64(i) + 0.5
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"tags":  []interface{}{"a", "b", i},
				"value": i * 10,
			}
		}
	}

	return result
}

// BenchmarkDeepNesting benchmarks validation of deeply nested trees
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth2Width10", 2, 10},
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			data := generateNestedJSON(depth.depth, depth.width)
			v := validator.New(validator.Options{})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ok, err := v.IsValidJSON(data)
				if err != nil || !ok {
					b.Fatalf("IsValidJSON() = %v, %v", ok, err)
				}
			}
		})
	}
}

// BenchmarkWideStructures benchmarks validation of wide trees
func BenchmarkWideStructures(b *testing.B) {
	widths := []int{10, 100, 1000}

	for _, width := range widths {
		b.Run(fmt.Sprintf("Fields%d", width), func(b *testing.B) {
			data := generateWideJSON(width)
			v := validator.New(validator.Options{})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ok, err := v.IsValidJSON(data)
				if err != nil || !ok {
					b.Fatalf("IsValidJSON() = %v, %v", ok, err)
				}
			}
		})
	}
}

// BenchmarkLongChain benchmarks a single very deep chain
func BenchmarkLongChain(b *testing.B) {
	root := map[string]interface{}{}
	cur := root
	for i := 0; i < 10000; i++ {
		next := map[string]interface{}{}
		cur["next"] = next
		cur = next
	}
	v := validator.New(validator.Options{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if ok, err := v.IsValidJSON(root); err != nil || !ok {
			b.Fatalf("IsValidJSON() = %v, %v", ok, err)
		}
	}
}

// BenchmarkParseAndValidate benchmarks the parser and validator together
func BenchmarkParseAndValidate(b *testing.B) {
	jsonData, err := json.Marshal(generateWideJSON(500))
	require.NoError(b, err)

	b.SetBytes(int64(len(jsonData)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ir, err := parser.ParseBytes(jsonData, parser.FormatJSON)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := validator.Check(ir.Root); err != nil {
			b.Fatal(err)
		}
	}
}
