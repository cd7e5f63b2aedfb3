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

package rules

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/validator"
)

// NoFragmentCycles implements the "Fragment spreads must not form cycles" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Fragment-spreads-must-not-form-cycles.
type NoFragmentCycles struct{}

// CheckDocument implements validator.DocumentRule.
func (rule NoFragmentCycles) CheckDocument(ctx *validator.ValidationContext) {
	detector := &cycleDetector{
		ctx:       ctx,
		visited:   map[string]bool{},
		pathIndex: map[string]int{},
	}

	for _, definition := range ctx.Document().Definitions {
		if fragment, ok := definition.(*ast.FragmentDefinition); ok {
			detector.detect(fragment)
		}
	}
}

type cycleDetector struct {
	ctx *validator.ValidationContext

	// Fragments that have been checked
	visited map[string]bool

	// Spreads from the fragment being checked to the current one
	path      []*ast.FragmentSpread
	pathIndex map[string]int
}

// detect does a depth-first search from fragment. A spread to a fragment that is already on the
// path closes a cycle.
func (d *cycleDetector) detect(fragment *ast.FragmentDefinition) {
	name := fragment.Name.Value()
	if d.visited[name] {
		return
	}
	d.visited[name] = true

	spreads := d.ctx.FragmentSpreads(fragment)
	if len(spreads) == 0 {
		return
	}

	d.pathIndex[name] = len(d.path)

	for _, spread := range spreads {
		spreadName := spread.Name.Value()
		index, onPath := d.pathIndex[spreadName]

		if !onPath {
			d.path = append(d.path, spread)
			if spreadFragment := d.ctx.Fragment(spreadName); spreadFragment != nil {
				d.detect(spreadFragment)
			}
			d.path = d.path[:len(d.path)-1]
			continue
		}

		cyclePath := append(append([]*ast.FragmentSpread(nil), d.path[index:]...), spread)
		var (
			names     []string
			locations []graphql.ErrorLocation
		)
		for i, s := range cyclePath {
			if i < len(cyclePath)-1 {
				names = append(names, `"`+s.Name.Value()+`"`)
			}
			locations = append(locations, graphql.ErrorLocationOfASTNode(s))
		}
		d.ctx.ReportError(cycleErrorMessage(spreadName, names), locations)
	}

	delete(d.pathIndex, name)
}
