package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// formReader pulls typed values out of a parsed form, remembering the first
// conversion error it hits so handlers can check once at the end.
type formReader struct {
	r   *http.Request
	err error
}

func (f *formReader) value(name string) string {
	return strings.TrimSpace(f.r.FormValue(name))
}

func (f *formReader) stringPtr(name string) *string {
	v := f.value(name)
	if v == "" {
		return nil
	}
	return &v
}

func (f *formReader) intField(name string) int {
	if f.err != nil {
		return 0
	}
	n, err := strconv.Atoi(f.value(name))
	if err != nil {
		f.err = fmt.Errorf("invalid value for %s", name)
		return 0
	}
	return n
}

func (f *formReader) intPtr(name string) *int {
	if f.err != nil {
		return nil
	}
	v := f.value(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.err = fmt.Errorf("invalid value for %s", name)
		return nil
	}
	return &n
}

func (f *formReader) int64Ptr(name string) *int64 {
	if f.err != nil {
		return nil
	}
	v := f.value(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f.err = fmt.Errorf("invalid value for %s", name)
		return nil
	}
	return &n
}

func (f *formReader) floatPtr(name string) *float64 {
	if f.err != nil {
		return nil
	}
	v := f.value(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.err = fmt.Errorf("invalid value for %s", name)
		return nil
	}
	return &n
}
