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
	"fmt"
	"strings"

	"github.com/botobag/routes/internal/util"
)

func anonOperationNotAloneMessage() string {
	return "This anonymous operation must be the only defined operation."
}

func duplicateOperationNameMessage(operationName string) string {
	return fmt.Sprintf(`There can be only one operation named "%s".`, operationName)
}

func duplicateFragmentNameMessage(fragmentName string) string {
	return fmt.Sprintf(`There can be only one fragment named "%s".`, fragmentName)
}

func unknownFragmentMessage(fragmentName string) string {
	return fmt.Sprintf(`Unknown fragment "%s".`, fragmentName)
}

func unusedFragmentMessage(fragmentName string) string {
	return fmt.Sprintf(`Fragment "%s" is never used.`, fragmentName)
}

func cycleErrorMessage(fragmentName string, spreadNames []string) string {
	via := ""
	if len(spreadNames) > 0 {
		via = " via "
		for i, name := range spreadNames {
			if i > 0 {
				via += ", "
			}
			via += name
		}
	}
	return fmt.Sprintf(`Cannot spread fragment "%s" within itself%s.`, fragmentName, via)
}

func undefinedFieldMessage(fieldName string, typeName string, suggestedFieldNames []string) string {
	return fmt.Sprintf(`Cannot query field "%s" on type "%s".%s`, fieldName, typeName,
		util.DidYouMean(suggestedFieldNames))
}

func noSubselectionAllowedMessage(fieldName string, typeName string) string {
	return fmt.Sprintf(`Field "%s" must not have a selection since type "%s" has no subfields.`,
		fieldName, typeName)
}

func requiredSubselectionMessage(fieldName string, typeName string) string {
	return fmt.Sprintf(`Field "%s" of type "%s" must have a selection of subfields. Did you mean "%s { ... }"?`,
		fieldName, typeName, fieldName)
}

func unknownArgMessage(argName string, fieldName string, typeName string, suggestedArgs []string) string {
	return fmt.Sprintf(`Unknown argument "%s" on field "%s" of type "%s".%s`, argName, fieldName, typeName,
		util.DidYouMean(suggestedArgs))
}

func unknownDirectiveArgMessage(argName string, directiveName string, suggestedArgs []string) string {
	return fmt.Sprintf(`Unknown argument "%s" on directive "@%s".%s`, argName, directiveName,
		util.DidYouMean(suggestedArgs))
}

func duplicateArgMessage(argName string) string {
	return fmt.Sprintf(`There can be only one argument named "%s".`, argName)
}

func missingFieldArgMessage(fieldName string, argName string, typeName string) string {
	return fmt.Sprintf(`Field "%s" argument "%s" of type "%s" is required, but it was not provided.`,
		fieldName, argName, typeName)
}

func missingDirectiveArgMessage(directiveName string, argName string, typeName string) string {
	return fmt.Sprintf(`Directive "@%s" argument "%s" of type "%s" is required, but it was not provided.`,
		directiveName, argName, typeName)
}

func unknownTypeMessage(typeName string, suggestedTypes []string) string {
	return fmt.Sprintf(`Unknown type "%s".%s`, typeName, util.DidYouMean(suggestedTypes))
}

func nonInputTypeOnVarMessage(variableName string, typeName string) string {
	return fmt.Sprintf(`Variable "$%s" cannot be non-input type "%s".`, variableName, typeName)
}

func duplicateVariableMessage(variableName string) string {
	return fmt.Sprintf(`There can be only one variable named "%s".`, variableName)
}

func undefinedVarMessage(variableName string, operationName string) string {
	if len(operationName) > 0 {
		return fmt.Sprintf(`Variable "$%s" is not defined by operation "%s".`, variableName, operationName)
	}
	return fmt.Sprintf(`Variable "$%s" is not defined.`, variableName)
}

func unusedVariableMessage(variableName string, operationName string) string {
	if len(operationName) > 0 {
		return fmt.Sprintf(`Variable "$%s" is never used in operation "%s".`, variableName, operationName)
	}
	return fmt.Sprintf(`Variable "$%s" is never used.`, variableName)
}

func badVarPosMessage(variableName string, varType string, expectedType string) string {
	return fmt.Sprintf(`Variable "$%s" of type "%s" used in position expecting type "%s".`,
		variableName, varType, expectedType)
}

func badValueMessage(typeName string, value string, reason string) string {
	message := fmt.Sprintf(`Expected type %s, found %s`, typeName, value)
	if len(reason) > 0 {
		return message + "; " + reason
	}
	return message + "."
}

func requiredFieldMessage(typeName string, fieldName string, fieldTypeName string) string {
	return fmt.Sprintf(`Field %s.%s of required type %s was not provided.`, typeName, fieldName, fieldTypeName)
}

func unknownFieldMessage(typeName string, fieldName string, suggestedFields []string) string {
	return fmt.Sprintf(`Field "%s" is not defined by type %s.%s`, fieldName, typeName,
		util.DidYouMean(suggestedFields))
}

func duplicateInputFieldMessage(fieldName string) string {
	return fmt.Sprintf(`There can be only one input field named "%s".`, fieldName)
}

func unknownDirectiveMessage(directiveName string) string {
	return fmt.Sprintf(`Unknown directive "%s".`, directiveName)
}

func misplacedDirectiveMessage(directiveName string, location string) string {
	return fmt.Sprintf(`Directive "%s" may not be used on %s.`, directiveName, location)
}

func inlineFragmentOnNonCompositeMessage(typeName string) string {
	return fmt.Sprintf(`Fragment cannot condition on non composite type "%s".`, typeName)
}

func fragmentOnNonCompositeMessage(fragmentName string, typeName string) string {
	return fmt.Sprintf(`Fragment "%s" cannot condition on non composite type "%s".`, fragmentName, typeName)
}

func typeIncompatibleSpreadMessage(fragmentName string, parentTypeName string, fragmentTypeName string) string {
	return fmt.Sprintf(`Fragment "%s" cannot be spread here as objects of type "%s" can never be of type "%s".`,
		fragmentName, parentTypeName, fragmentTypeName)
}

func typeIncompatibleAnonSpreadMessage(parentTypeName string, fragmentTypeName string) string {
	return fmt.Sprintf(`Fragment cannot be spread here as objects of type "%s" can never be of type "%s".`,
		parentTypeName, fragmentTypeName)
}

func subscriptionNotSupportedMessage() string {
	return "Subscription operations are not supported."
}

// conflictReason tells why two fields of the same response key cannot be merged. Either message is
// set, or subReasons lists the conflicts between their sub-fields.
type conflictReason struct {
	responseKey string
	message     string
	subReasons  []*conflictReason
}

func (reason *conflictReason) describe(b *strings.Builder) {
	if len(reason.subReasons) == 0 {
		b.WriteString(reason.message)
		return
	}
	for i, subReason := range reason.subReasons {
		if i > 0 {
			b.WriteString(" and ")
		}
		fmt.Fprintf(b, `subfields "%s" conflict because `, subReason.responseKey)
		subReason.describe(b)
	}
}

func fieldsConflictMessage(reason *conflictReason) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Fields "%s" conflict because `, reason.responseKey)
	reason.describe(&b)
	b.WriteString(". Use different aliases on the fields to fetch both if this was intentional.")
	return b.String()
}
