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

// Package rules implements the validation rules run by validator.Validate. Importing the package
// installs them as the standard rule set.
package rules

import (
	"github.com/botobag/routes/graphql/validator"
)

func init() {
	validator.SetStandardRules(
		LoneAnonymousOperation{},
		UniqueOperationNames{},
		SupportedOperationTypes{},
		UniqueFragmentNames{},
		KnownFragmentNames{},
		NoUnusedFragments{},
		NoFragmentCycles{},
		FragmentsOnCompositeTypes{},
		PossibleFragmentSpreads{},
		FieldsOnCorrectType{},
		ScalarLeafs{},
		OverlappingFieldsCanBeMerged{},
		KnownArgumentNames{},
		UniqueArgumentNames{},
		ProvidedRequiredArguments{},
		KnownDirectives{},
		KnownTypeNames{},
		UniqueVariableNames{},
		VariablesAreInputTypes{},
		NoUndefinedVariables{},
		NoUnusedVariables{},
		VariablesInAllowedPosition{},
		ValuesOfCorrectType{},
	)
}
