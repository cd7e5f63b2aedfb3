/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package graphql

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Inspect formats a Go value for use in error messages. Strings are quoted, nil prints as null and
// maps print with sorted keys.
func Inspect(value interface{}) string {
	var b strings.Builder
	inspect(&b, value, 0)
	return b.String()
}

const maxInspectDepth = 2

func inspect(b *strings.Builder, value interface{}, depth int) {
	if value == nil {
		b.WriteString("null")
		return
	}

	switch value := value.(type) {
	case string:
		b.WriteString(strconv.Quote(value))
		return
	case fmt.Stringer:
		b.WriteString(value.String())
		return
	case error:
		b.WriteString(value.Error())
		return
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			b.WriteString("null")
			return
		}
		inspect(b, v.Elem().Interface(), depth)

	case reflect.Slice, reflect.Array:
		if depth > maxInspectDepth {
			b.WriteString("[Array]")
			return
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			inspect(b, v.Index(i).Interface(), depth+1)
		}
		b.WriteByte(']')

	case reflect.Map:
		if depth > maxInspectDepth {
			b.WriteString("[Object]")
			return
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		b.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprint(b, key.Interface())
			b.WriteString(": ")
			inspect(b, v.MapIndex(key).Interface(), depth+1)
		}
		b.WriteByte('}')

	default:
		fmt.Fprintf(b, "%v", value)
	}
}
