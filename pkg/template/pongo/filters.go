package pongo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var filtersOnce sync.Once

// registerDefaultFilters installs the filters attribute files and render
// templates rely on beyond pongo2's built-in set.
func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("max") {
			_ = pongo2.RegisterFilter("max", filterMax)
		}
		if !pongo2.FilterExists("titlecase") {
			_ = pongo2.RegisterFilter("titlecase", filterTitlecase)
		}
	})
}

func filterTitlecase(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	caser := cases.Title(language.English)
	return pongo2.AsValue(caser.String(in.String())), nil
}

// filterMax returns the maximum of a sequence. Strings are treated as a
// whitespace- or comma-delimited list of numbers.
func filterMax(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	nums, err := numbersOf(in)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:max", OrigError: err}
	}
	if len(nums) == 0 {
		return nil, &pongo2.Error{Sender: "filter:max", OrigError: errors.New("max of empty sequence")}
	}

	maxVal := nums[0]
	for _, v := range nums[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == float64(int64(maxVal)) {
		return pongo2.AsValue(int64(maxVal)), nil
	}
	return pongo2.AsValue(maxVal), nil
}

func numbersOf(in *pongo2.Value) ([]float64, error) {
	if in.IsString() {
		fields := strings.FieldsFunc(in.String(), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		out := make([]float64, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("max: %q is not a number", field)
			}
			out = append(out, v)
		}
		return out, nil
	}

	if !in.CanSlice() {
		return nil, fmt.Errorf("max: cannot iterate %s", in.String())
	}
	out := make([]float64, 0, in.Len())
	for i := 0; i < in.Len(); i++ {
		item := in.Index(i)
		if !item.IsNumber() {
			return nil, fmt.Errorf("max: element %d is not a number", i)
		}
		out = append(out, item.Float())
	}
	return out, nil
}
