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

package validator

import (
	"sync"
)

var (
	standardRulesMutex sync.RWMutex
	standardRules      *rules
)

// SetStandardRules installs the rule set run by Validate. It is called by the init function of the
// rules package, which cannot be imported from here without an import cycle.
func SetStandardRules(rs ...interface{}) {
	built := buildRules(rs...)
	standardRulesMutex.Lock()
	standardRules = built
	standardRulesMutex.Unlock()
}

// StandardRules returns the rule set run by Validate. It panics if the rules package is not linked
// into the program.
func StandardRules() *rules {
	standardRulesMutex.RLock()
	defer standardRulesMutex.RUnlock()
	if standardRules == nil {
		panic(`validator: standard rules are not loaded; import _ "github.com/botobag/routes/graphql/validator/rules"`)
	}
	return standardRules
}
