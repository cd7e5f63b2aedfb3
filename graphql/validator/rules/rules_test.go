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

package rules_test

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/parser"
	"github.com/botobag/routes/graphql/token"
	"github.com/botobag/routes/graphql/validator"
	"github.com/botobag/routes/graphql/validator/rules"
	"github.com/botobag/routes/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoneAnonymousOperation", func() {
	rule := rules.LoneAnonymousOperation{}

	It("accepts one anonymous operation", func() {
		expectValid(rule, `{ name }`)
	})

	It("accepts multiple named operations", func() {
		expectValid(rule, `
query A { name }
query B { name }
`)
	})

	It("rejects anonymous operation along with others", func() {
		expectErrors(rule, `
{ name }
query B { name }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError("This anonymous operation must be the only defined operation.", loc(2, 1)),
		))
	})
})

var _ = Describe("UniqueOperationNames", func() {
	rule := rules.UniqueOperationNames{}

	It("rejects operations of the same name", func() {
		expectErrors(rule, `
query Route { name }
mutation Route { createRoute(newRoute: { userId: "1" }) { id } }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`There can be only one operation named "Route".`, loc(2, 7), loc(3, 10)),
		))
	})
})

var _ = Describe("SupportedOperationTypes", func() {
	rule := rules.SupportedOperationTypes{}

	It("accepts query and mutation", func() {
		expectValid(rule, `
query A { name }
mutation B { createRoute(newRoute: { userId: "1" }) { id } }
`)
	})

	It("rejects subscription", func() {
		expectErrors(rule, `subscription { name }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError("Subscription operations are not supported.", loc(1, 1)),
		))
	})

	It("rejects mutation on schema without mutation type", func() {
		schema := graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: queryType,
		})
		errs := validateWithSchema(schema, rule, `mutation { name }`)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			validationError("Schema is not configured for mutations.", loc(1, 1)),
		))
	})
})

var _ = Describe("Fragment rules", func() {
	It("rejects fragments of the same name", func() {
		expectErrors(rules.UniqueFragmentNames{}, `
{ route(id: "1") { ...F } }
fragment F on Route { id }
fragment F on Route { status }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`There can be only one fragment named "F".`, loc(3, 10), loc(4, 10)),
		))
	})

	It("rejects unknown fragment", func() {
		expectErrors(rules.KnownFragmentNames{}, `{ route(id: "1") { ...Missing } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Unknown fragment "Missing".`, loc(1, 23)),
			))
	})

	It("rejects unused fragment", func() {
		expectErrors(rules.NoUnusedFragments{}, `
{ route(id: "1") { ...Used } }
fragment Used on Route { id }
fragment Unused on Route { id }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fragment "Unused" is never used.`, loc(4, 1)),
		))
	})

	It("rejects fragment spreading itself", func() {
		expectErrors(rules.NoFragmentCycles{}, `
{ route(id: "1") { ...A } }
fragment A on Route { ...A }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Cannot spread fragment "A" within itself.`, loc(3, 23)),
		))
	})

	It("rejects fragment cycle through another fragment", func() {
		expectErrors(rules.NoFragmentCycles{}, `
{ route(id: "1") { ...A } }
fragment A on Route { ...B }
fragment B on Route { ...A }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Cannot spread fragment "A" within itself via "B".`, loc(3, 23), loc(4, 23)),
		))
	})

	It("accepts fragments spread twice without cycle", func() {
		expectValid(rules.NoFragmentCycles{}, `
{ route(id: "1") { ...A ...B } }
fragment A on Route { ...B }
fragment B on Route { id }
`)
	})

	It("rejects fragment on scalar", func() {
		expectErrors(rules.FragmentsOnCompositeTypes{}, `
{ route(id: "1") { ...F ... on Status { id } } }
fragment F on ID { id }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fragment cannot condition on non composite type "Status".`, loc(2, 32)),
			validationError(`Fragment "F" cannot condition on non composite type "ID".`, loc(3, 15)),
		))
	})

	It("rejects spread of unrelated type", func() {
		expectErrors(rules.PossibleFragmentSpreads{}, `
{ route(id: "1") { ...F ... on User { id } } }
fragment F on User { id }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fragment "F" cannot be spread here as objects of type "Route" can never be of type "User".`,
				loc(2, 20)),
			validationError(`Fragment cannot be spread here as objects of type "Route" can never be of type "User".`,
				loc(2, 25)),
		))
	})
})

var _ = Describe("FieldsOnCorrectType", func() {
	rule := rules.FieldsOnCorrectType{}

	It("accepts known fields and meta fields", func() {
		expectValid(rule, `{ __typename route(id: "1") { __typename id owner { name } } }`)
	})

	It("suggests similar field", func() {
		expectErrors(rule, `{ route(id: "1") { statuss } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Cannot query field "statuss" on type "Route". Did you mean "status"?`, loc(1, 20)),
		))
	})

	It("rejects unknown field without suggestion", func() {
		expectErrors(rule, `{ routeList }`).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageContainSubstring(`Cannot query field "routeList" on type "Query".`),
				testutil.LocationEqual(1, 3),
			),
		))
	})
})

var _ = Describe("ScalarLeafs", func() {
	rule := rules.ScalarLeafs{}

	It("rejects selection on leaf field", func() {
		expectErrors(rule, `{ route(id: "1") { id { value } } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Field "id" must not have a selection since type "ID!" has no subfields.`, loc(1, 20)),
		))
	})

	It("requires selection on object field", func() {
		expectErrors(rule, `{ route(id: "1") }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Field "route" of type "Route" must have a selection of subfields. Did you mean "route { ... }"?`,
				loc(1, 3)),
		))
	})
})

var _ = Describe("Argument rules", func() {
	It("rejects unknown field argument", func() {
		expectErrors(rules.KnownArgumentNames{}, `{ route(identifier: "1") { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Unknown argument "identifier" on field "route" of type "Query".`, loc(1, 9)),
			))
	})

	It("rejects unknown directive argument", func() {
		expectErrors(rules.KnownArgumentNames{}, `{ name @skip(unless: true) }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Unknown argument "unless" on directive "@skip".`, loc(1, 14)),
			))
	})

	It("rejects duplicate arguments", func() {
		expectErrors(rules.UniqueArgumentNames{}, `{ route(id: "1", id: "2") { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`There can be only one argument named "id".`, loc(1, 9), loc(1, 18)),
			))
	})

	It("requires non-null field arguments", func() {
		expectErrors(rules.ProvidedRequiredArguments{}, `{ route { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Field "route" argument "id" of type "ID!" is required, but it was not provided.`,
					loc(1, 3)),
			))
	})

	It("accepts missing nullable arguments", func() {
		expectValid(rules.ProvidedRequiredArguments{}, `{ routes { id } }`)
	})

	It("requires non-null directive arguments", func() {
		expectErrors(rules.ProvidedRequiredArguments{}, `{ name @include }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Directive "@include" argument "if" of type "Boolean!" is required, but it was not provided.`,
					loc(1, 8)),
			))
	})
})

var _ = Describe("KnownDirectives", func() {
	rule := rules.KnownDirectives{}

	It("rejects unknown directive", func() {
		expectErrors(rule, `{ name @unknown }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Unknown directive "unknown".`, loc(1, 8)),
		))
	})

	It("rejects misplaced directive", func() {
		expectErrors(rule, `query @include(if: true) { name }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Directive "include" may not be used on QUERY.`, loc(1, 7)),
		))
	})
})

var _ = Describe("Variable rules", func() {
	It("rejects unknown variable type", func() {
		expectErrors(rules.KnownTypeNames{}, `query ($id: Idd) { route(id: $id) { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Unknown type "Idd". Did you mean "ID"?`, loc(1, 13)),
			))
	})

	It("rejects duplicate variables", func() {
		expectErrors(rules.UniqueVariableNames{}, `query ($a: Int, $a: Int) { name }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`There can be only one variable named "a".`, loc(1, 9), loc(1, 18)),
			))
	})

	It("rejects output type for variable", func() {
		expectErrors(rules.VariablesAreInputTypes{}, `query ($r: Route) { name }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Variable "$r" cannot be non-input type "Route".`, loc(1, 12)),
			))
	})

	It("rejects undefined variable", func() {
		expectErrors(rules.NoUndefinedVariables{}, `query Q { route(id: $id) { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Variable "$id" is not defined by operation "Q".`, loc(1, 21), loc(1, 1)),
			))
	})

	It("finds variables used in fragments", func() {
		expectValid(rules.NoUndefinedVariables{}, `
query ($id: ID!) { ...F }
fragment F on Query { route(id: $id) { id } }
`)
		expectValid(rules.NoUnusedVariables{}, `
query ($id: ID!) { ...F }
fragment F on Query { route(id: $id) { id } }
`)
	})

	It("rejects unused variable", func() {
		expectErrors(rules.NoUnusedVariables{}, `query ($unused: Int) { name }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Variable "$unused" is never used.`, loc(1, 8)),
			))
	})

	It("rejects nullable variable in non-null position", func() {
		expectErrors(rules.VariablesInAllowedPosition{}, `query ($id: ID) { route(id: $id) { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Variable "$id" of type "ID" used in position expecting type "ID!".`,
					loc(1, 8), loc(1, 29)),
			))
	})

	It("accepts nullable variable with default in non-null position", func() {
		expectValid(rules.VariablesInAllowedPosition{}, `query ($id: ID = "1") { route(id: $id) { id } }`)
	})
})

var _ = Describe("ValuesOfCorrectType", func() {
	rule := rules.ValuesOfCorrectType{}

	It("accepts valid literals", func() {
		expectValid(rule, `
{
  routes(status: FINISHED, first: 10) { id }
  route(id: 4) { id }
}
`)
		expectValid(rule, `mutation { createRoute(newRoute: { userId: "1", status: ACTIVE }) { id } }`)
	})

	It("rejects mismatched scalar", func() {
		expectErrors(rule, `{ routes(first: "ten") { id } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Expected type Int, found "ten"; Int cannot represent non-integer value: "ten"`, loc(1, 17)),
		))
	})

	It("suggests enum value", func() {
		expectErrors(rule, `{ routes(status: ACTIVEE) { id } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Expected type Status, found ACTIVEE; Did you mean the enum value ACTIVE?`, loc(1, 18)),
		))
	})

	It("rejects null for non-null type", func() {
		expectErrors(rule, `{ route(id: null) { id } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Expected type ID!, found null.`, loc(1, 13)),
		))
	})

	It("requires non-null input fields", func() {
		expectErrors(rule, `mutation { createRoute(newRoute: { status: ACTIVE }) { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Field NewRoute.userId of required type ID! was not provided.`, loc(1, 34)),
			))
	})

	It("rejects unknown input field", func() {
		expectErrors(rule, `mutation { createRoute(newRoute: { userId: "1", user: "2" }) { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Field "user" is not defined by type NewRoute. Did you mean "userId"?`, loc(1, 49)),
			))
	})

	It("skips values containing variables", func() {
		expectValid(rule, `mutation ($userId: ID!) { createRoute(newRoute: { userId: $userId }) { id } }`)
	})
})

var _ = Describe("OverlappingFieldsCanBeMerged", func() {
	rule := rules.OverlappingFieldsCanBeMerged{}

	It("accepts identical fields", func() {
		expectValid(rule, `{ route(id: "1") { id id } }`)
		expectValid(rule, `query ($a: ID!) { route(id: $a) { id } route(id: $a) { id } }`)
		expectValid(rule, `{ route(id: "1") { ... on Route { id } id } }`)
		expectValid(rule, `
{ route(id: "1") { ...RouteFields id } }
fragment RouteFields on Route { id }
`)
	})

	It("accepts different fields under different keys", func() {
		expectValid(rule, `{ route(id: "1") { id userId } }`)
		expectValid(rule, `{ first: route(id: "1") { id } second: route(id: "2") { id } }`)
	})

	It("rejects different fields under one key", func() {
		expectErrors(rule, `{ route(id: "1") { id: userId id } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fields "id" conflict because userId and id are different fields. `+
				`Use different aliases on the fields to fetch both if this was intentional.`, loc(1, 20), loc(1, 31)),
		))
	})

	It("rejects same field with different arguments", func() {
		expectErrors(rule, `{ route(id: "1") { id } route(id: "2") { id } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fields "route" conflict because they have differing arguments. `+
				`Use different aliases on the fields to fetch both if this was intentional.`, loc(1, 3), loc(1, 25)),
		))
	})

	It("rejects same field with different variables", func() {
		expectErrors(rule, `query ($a: ID!, $b: ID!) { route(id: $a) { id } route(id: $b) { id } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Fields "route" conflict because they have differing arguments. `+
					`Use different aliases on the fields to fetch both if this was intentional.`, loc(1, 28), loc(1, 49)),
			))
	})

	It("rejects conflicting subfields", func() {
		expectErrors(rule, `{ route(id: "1") { x: id } route(id: "1") { x: userId } }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Fields "route" conflict because subfields "x" conflict because id and userId are different fields. `+
					`Use different aliases on the fields to fetch both if this was intentional.`,
					loc(1, 3), loc(1, 20), loc(1, 28), loc(1, 45)),
			))
	})

	It("rejects conflict with field in inline fragment", func() {
		expectErrors(rule, `{ route(id: "1") { ... on Route { id: status } id } }`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fields "id" conflict because status and id are different fields. `+
				`Use different aliases on the fields to fetch both if this was intentional.`, loc(1, 35), loc(1, 48)),
		))
	})

	It("rejects conflict with field in spread fragment", func() {
		expectErrors(rule, `{ route(id: "1") { ...RouteFields id: userId } } fragment RouteFields on Route { id }`).Should(
			testutil.ConsistOfGraphQLErrors(
				validationError(`Fields "id" conflict because userId and id are different fields. `+
					`Use different aliases on the fields to fetch both if this was intentional.`, loc(1, 35), loc(1, 82)),
			))
	})

	It("rejects conflict between spread fragments", func() {
		expectErrors(rule, `
{ route(id: "1") { ...A ...B } }
fragment A on Route { x: id }
fragment B on Route { x: status }
`).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fields "x" conflict because id and status are different fields. `+
				`Use different aliases on the fields to fetch both if this was intentional.`, loc(3, 23), loc(4, 23)),
		))
	})

	It("terminates on fragment cycles", func() {
		expectValid(rule, `
{ route(id: "1") { ...A } }
fragment A on Route { id ...B }
fragment B on Route { id ...A }
`)
	})
})

var _ = Describe("Validate", func() {
	validate := func(query string) graphql.Errors {
		document, err := parser.Parse(token.NewSource(query, ""))
		Expect(err).ShouldNot(HaveOccurred())
		return validator.Validate(testSchema, document)
	}

	It("accepts valid document", func() {
		errs := validate(`
query GetRoute($id: ID!) {
  route(id: $id) { ...RouteFields owner { name } }
}

fragment RouteFields on Route { id userId status }
`)
		Expect(errs.HaveOccurred()).Should(BeFalse(), "%s", errs)
	})

	It("reports errors from every standard rule", func() {
		errs := validate(`query ($unused: Int) { route { idd } }`)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Variable "$unused" is never used.`, loc(1, 8)),
			validationError(`Field "route" argument "id" of type "ID!" is required, but it was not provided.`, loc(1, 24)),
			validationError(`Cannot query field "idd" on type "Route". Did you mean "id"?`, loc(1, 32)),
		))
	})

	It("rejects fields that cannot be merged", func() {
		errs := validate(`{ route(id: "1") { id: userId id } }`)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			validationError(`Fields "id" conflict because userId and id are different fields. `+
				`Use different aliases on the fields to fetch both if this was intentional.`, loc(1, 20), loc(1, 31)),
		))
	})
})
