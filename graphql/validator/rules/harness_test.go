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
	"github.com/botobag/routes/internal/testutil"

	"github.com/onsi/gomega/types"

	. "github.com/onsi/gomega"
)

var (
	statusType = graphql.MustNewEnum(&graphql.EnumConfig{
		Name: "Status",
		Values: graphql.EnumValueConfigMap{
			"ACTIVE":   {},
			"FINISHED": {},
		},
	})

	userType = graphql.MustNewObject(&graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":   {Type: graphql.MustNewNonNullOf(graphql.ID())},
			"name": {Type: graphql.String()},
		},
	})

	routeType = graphql.MustNewObject(&graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"id":     {Type: graphql.MustNewNonNullOf(graphql.ID())},
			"userId": {Type: graphql.MustNewNonNullOf(graphql.ID())},
			"status": {Type: graphql.MustNewNonNullOf(statusType)},
			"owner":  {Type: userType},
		},
	})

	newRouteType = graphql.MustNewInputObject(&graphql.InputObjectConfig{
		Name: "NewRoute",
		Fields: graphql.InputFields{
			"userId": {Type: graphql.MustNewNonNullOf(graphql.ID())},
			"status": {Type: statusType},
		},
	})

	queryType = graphql.MustNewObject(&graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"name": {Type: graphql.String()},
			"route": {
				Type: routeType,
				Args: graphql.ArgumentConfigMap{
					"id": {Type: graphql.MustNewNonNullOf(graphql.ID())},
				},
			},
			"routes": {
				Type: graphql.MustNewListOf(routeType),
				Args: graphql.ArgumentConfigMap{
					"status": {Type: statusType},
					"first":  {Type: graphql.Int()},
				},
			},
		},
	})

	// testSchema is the schema used by rule tests.
	testSchema = graphql.MustNewSchema(&graphql.SchemaConfig{
		Query: queryType,
		Mutation: graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Mutation",
			Fields: graphql.Fields{
				"createRoute": {
					Type: routeType,
					Args: graphql.ArgumentConfigMap{
						"newRoute": {Type: graphql.MustNewNonNullOf(newRouteType)},
					},
				},
			},
		}),
	})
)

func validateWithSchema(schema *graphql.Schema, rule interface{}, query string) graphql.Errors {
	document, err := parser.Parse(token.NewSource(query, ""))
	Expect(err).ShouldNot(HaveOccurred())
	return validator.ValidateWithRules(schema, document, rule)
}

func expectValid(rule interface{}, query string) {
	errs := validateWithSchema(testSchema, rule, query)
	Expect(errs.HaveOccurred()).Should(BeFalse(), "%s", errs)
}

func expectErrors(rule interface{}, query string) GomegaAssertion {
	return Expect(validateWithSchema(testSchema, rule, query))
}

func loc(line uint, column uint) graphql.ErrorLocation {
	return graphql.ErrorLocation{Line: line, Column: column}
}

// validationError matches a validation error with message at the given locations.
func validationError(message string, locations ...graphql.ErrorLocation) types.GomegaMatcher {
	return testutil.MatchGraphQLError(
		testutil.MessageEqual(message),
		testutil.LocationsConsistOf(locations...),
		testutil.KindIs(graphql.ErrKindValidation),
	)
}
