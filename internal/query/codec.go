// Package query maps the list-view filter state to and from a URL query
// string, so filtered views stay bookmarkable and shareable. Encode and
// Decode are pure; pushing the resulting query into browser history (or a
// CLI flag set) is the caller's business.
package query

import (
	"net/url"
	"strconv"

	"estatehub/client/internal/models"
)

// filterKeys is the canonical key list, in encoding order.
var filterKeys = []string{
	"status", "type", "minPrice", "maxPrice",
	"bedrooms", "bathrooms", "city", "furnishing", "page",
}

// Encode serializes the filter state to a query string without the leading
// "?". Keys with empty values are omitted; key order follows the canonical
// key list. A page of zero or less is treated as unset.
func Encode(f models.FilterState) string {
	values := url.Values{}
	for _, key := range filterKeys {
		if v := fieldValue(f, key); v != "" {
			values.Set(key, v)
		}
	}
	return encodeOrdered(values)
}

// Decode parses a query string (with or without the leading "?") into a
// filter state. Unknown parameters are ignored. The page parameter decodes
// to a positive integer, defaulting to 1 when absent or non-numeric.
func Decode(rawQuery string) models.FilterState {
	if len(rawQuery) > 0 && rawQuery[0] == '?' {
		rawQuery = rawQuery[1:]
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}

	f := models.FilterState{
		Status:     values.Get("status"),
		Type:       values.Get("type"),
		MinPrice:   values.Get("minPrice"),
		MaxPrice:   values.Get("maxPrice"),
		Bedrooms:   values.Get("bedrooms"),
		Bathrooms:  values.Get("bathrooms"),
		City:       values.Get("city"),
		Furnishing: values.Get("furnishing"),
		Page:       1,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		f.Page = page
	}
	return f
}

func fieldValue(f models.FilterState, key string) string {
	switch key {
	case "status":
		return f.Status
	case "type":
		return f.Type
	case "minPrice":
		return f.MinPrice
	case "maxPrice":
		return f.MaxPrice
	case "bedrooms":
		return f.Bedrooms
	case "bathrooms":
		return f.Bathrooms
	case "city":
		return f.City
	case "furnishing":
		return f.Furnishing
	case "page":
		if f.Page > 0 {
			return strconv.Itoa(f.Page)
		}
		return ""
	}
	return ""
}

// encodeOrdered is url.Values.Encode without the alphabetical sort, so the
// output follows the canonical key order instead.
func encodeOrdered(values url.Values) string {
	var buf []byte
	for _, key := range filterKeys {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			continue
		}
		if len(buf) > 0 {
			buf = append(buf, '&')
		}
		buf = append(buf, url.QueryEscape(key)...)
		buf = append(buf, '=')
		buf = append(buf, url.QueryEscape(v[0])...)
	}
	return string(buf)
}
