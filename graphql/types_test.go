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

package graphql_test

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/parser"
	"github.com/botobag/routes/graphql/token"
	"github.com/botobag/routes/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func parseLiteral(text string) ast.Value {
	value, err := parser.ParseValue(token.NewSource(text, ""))
	Expect(err).ShouldNot(HaveOccurred())
	return value
}

var _ = Describe("Scalars", func() {
	DescribeTable("coerces result values",
		func(scalar *graphql.Scalar, value interface{}, expected interface{}) {
			Expect(scalar.CoerceResultValue(value)).Should(Equal(expected))
		},
		Entry("Int from int64", graphql.Int(), int64(42), 42),
		Entry("Int from integral float", graphql.Int(), 1e5, 100000),
		Entry("Int from bool", graphql.Int(), true, 1),
		Entry("Int from numeric string", graphql.Int(), "-1", -1),
		Entry("Float from int", graphql.Float(), 3, float64(3)),
		Entry("Float from string", graphql.Float(), "1.5", 1.5),
		Entry("String from bool", graphql.String(), false, "false"),
		Entry("String from int", graphql.String(), -7, "-7"),
		Entry("String from bytes", graphql.String(), []byte("route"), "route"),
		Entry("Boolean from number", graphql.Boolean(), 0, false),
		Entry("ID from int", graphql.ID(), 123, "123"),
	)

	DescribeTable("rejects result values it cannot represent",
		func(scalar *graphql.Scalar, value interface{}, message string) {
			_, err := scalar.CoerceResultValue(value)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(message),
				testutil.KindIs(graphql.ErrKindCoercion),
			))
		},
		Entry("Int from fraction", graphql.Int(), 0.1, "Int cannot represent non-integer value: 0.1"),
		Entry("Int out of range", graphql.Int(), int64(1)<<40,
			"Int cannot represent non 32-bit signed integer value: 1099511627776"),
		Entry("Float from text", graphql.Float(), "one", `Float cannot represent non numeric value: "one"`),
		Entry("Boolean from text", graphql.Boolean(), "true", `Boolean cannot represent a non boolean value: "true"`),
		Entry("ID from bool", graphql.ID(), true, "ID cannot represent value: true"),
	)

	DescribeTable("coerces literals",
		func(scalar *graphql.Scalar, literal string, expected interface{}) {
			Expect(scalar.CoerceArgumentValue(parseLiteral(literal))).Should(Equal(expected))
		},
		Entry("Int", graphql.Int(), "123", 123),
		Entry("Float from Int", graphql.Float(), "2", float64(2)),
		Entry("Float", graphql.Float(), "2.5e1", float64(25)),
		Entry("String", graphql.String(), `"route"`, "route"),
		Entry("Boolean", graphql.Boolean(), "true", true),
		Entry("ID from String", graphql.ID(), `"abc"`, "abc"),
		Entry("ID from Int", graphql.ID(), "10", "10"),
	)

	It("rejects mismatched literals", func() {
		_, err := graphql.Int().CoerceArgumentValue(parseLiteral(`"1"`))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Int cannot represent non-integer value: "1"`),
		))

		_, err = graphql.Int().CoerceArgumentValue(parseLiteral("2147483648"))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Int cannot represent non 32-bit signed integer value: 2147483648"),
		))

		_, err = graphql.String().CoerceArgumentValue(parseLiteral("ACTIVE"))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`String cannot represent a non string value: "ACTIVE"`),
		))
	})

	It("coerces variable values strictly", func() {
		_, err := graphql.String().CoerceVariableValue(1)
		Expect(err).Should(HaveOccurred())
		_, err = graphql.Boolean().CoerceVariableValue("true")
		Expect(err).Should(HaveOccurred())
		Expect(graphql.Int().CoerceVariableValue(float64(3))).Should(Equal(3))
	})

	It("recognizes the built-in scalars", func() {
		for _, scalar := range []*graphql.Scalar{
			graphql.Int(), graphql.Float(), graphql.String(), graphql.Boolean(), graphql.ID(),
		} {
			Expect(graphql.IsSpecifiedScalarType(scalar)).Should(BeTrue(), scalar.Name())
		}

		custom := graphql.MustNewScalar(&graphql.ScalarConfig{
			Name: "Custom",
			ResultCoercer: graphql.CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
				return value, nil
			}),
		})
		Expect(graphql.IsSpecifiedScalarType(custom)).Should(BeFalse())
	})
})

var _ = Describe("Enum", func() {
	type status int

	const (
		active status = iota
		finished
	)

	var statusEnum *graphql.Enum

	BeforeEach(func() {
		statusEnum = graphql.MustNewEnum(&graphql.EnumConfig{
			Name: "Status",
			Values: graphql.EnumValueConfigMap{
				"FINISHED": {Value: finished},
				"ACTIVE":   {Value: active},
				"UNKNOWN":  {},
			},
		})
	})

	It("sorts values by name", func() {
		var names []string
		for _, value := range statusEnum.Values() {
			names = append(names, value.Name())
		}
		Expect(names).Should(Equal([]string{"ACTIVE", "FINISHED", "UNKNOWN"}))
		Expect(statusEnum.Value("UNKNOWN").Value()).Should(Equal("UNKNOWN"))
		Expect(statusEnum.Value("MISSING")).Should(BeNil())
	})

	It("maps internal values to names", func() {
		Expect(statusEnum.CoerceResultValue(finished)).Should(Equal("FINISHED"))
		_, err := statusEnum.CoerceResultValue(status(7))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Enum "Status" cannot represent value: 7`),
		))
	})

	It("maps input names to internal values", func() {
		Expect(statusEnum.CoerceVariableValue("ACTIVE")).Should(Equal(active))
		Expect(statusEnum.CoerceArgumentValue(parseLiteral("FINISHED"))).Should(Equal(finished))

		_, err := statusEnum.CoerceVariableValue("PAUSED")
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Value "PAUSED" does not exist in "Status" enum.`),
		))

		_, err = statusEnum.CoerceArgumentValue(parseLiteral(`"ACTIVE"`))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Enum "Status" cannot represent non-enum value: "ACTIVE".`),
		))
	})

	It("rejects reserved value names", func() {
		_, err := graphql.NewEnum(&graphql.EnumConfig{
			Name: "Bad",
			Values: graphql.EnumValueConfigMap{
				"null": {},
			},
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Bad.null is not an allowed enum value name."),
		))
	})

	It("requires values", func() {
		_, err := graphql.NewEnum(&graphql.EnumConfig{Name: "Empty"})
		Expect(err).Should(HaveOccurred())
	})
})

var _ = Describe("Wrapping types", func() {
	It("prints type notation", func() {
		list := graphql.MustNewListOf(graphql.MustNewNonNullOf(graphql.String()))
		Expect(list.String()).Should(Equal("[String!]"))
		Expect(graphql.MustNewNonNullOf(list).String()).Should(Equal("[String!]!"))
		Expect(graphql.NamedTypeOf(list)).Should(Equal(graphql.String()))
	})

	It("rejects NonNull of NonNull", func() {
		_, err := graphql.NewNonNullOf(graphql.MustNewNonNullOf(graphql.Int()))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Expected a nullable type for NonNull but got an NonNull."),
		))
	})

	It("rejects nil element", func() {
		_, err := graphql.NewListOf(nil)
		Expect(err).Should(HaveOccurred())
	})
})

var _ = Describe("Schema", func() {
	var (
		newRouteType *graphql.InputObject
		routeType    *graphql.Object
	)

	BeforeEach(func() {
		newRouteType = graphql.MustNewInputObject(&graphql.InputObjectConfig{
			Name: "NewRoute",
			Fields: graphql.InputFields{
				"userId": {Type: graphql.MustNewNonNullOf(graphql.ID())},
			},
		})
		routeType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Route",
			Fields: graphql.Fields{
				"id": {Type: graphql.MustNewNonNullOf(graphql.ID())},
			},
		})
	})

	It("collects reachable types", func() {
		schema, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"route": {
						Type: routeType,
						Args: graphql.ArgumentConfigMap{
							"id": {Type: graphql.MustNewNonNullOf(graphql.ID())},
						},
					},
				},
			}),
			Mutation: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Mutation",
				Fields: graphql.Fields{
					"createRoute": {
						Type: routeType,
						Args: graphql.ArgumentConfigMap{
							"newRoute": {Type: newRouteType},
						},
					},
				},
			}),
		})
		Expect(err).ShouldNot(HaveOccurred())

		Expect(schema.TypeFromName("Route")).Should(Equal(routeType))
		Expect(schema.TypeFromName("NewRoute")).Should(Equal(newRouteType))
		Expect(schema.TypeFromName("ID")).Should(Equal(graphql.ID()))
		Expect(schema.TypeFromName("__Schema")).ShouldNot(BeNil())
		Expect(schema.TypeFromName("Missing")).Should(BeNil())
		Expect(schema.RootType(ast.OperationTypeMutation)).Should(Equal(schema.Mutation()))
		Expect(schema.RootType(ast.OperationTypeSubscription)).Should(BeNil())

		var names []string
		for _, t := range schema.Types() {
			names = append(names, t.Name())
		}
		Expect(names).Should(BeEquivalentTo(sortedCopy(names)))

		t, err := parser.ParseType(token.NewSource("[NewRoute!]", ""))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(schema.TypeFromAST(t).String()).Should(Equal("[NewRoute!]"))
	})

	It("requires query type", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Schema query must be Object Type but got: nil."),
		))
	})

	It("rejects duplicate type names", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"a": {Type: routeType},
					"b": {Type: graphql.MustNewObject(&graphql.ObjectConfig{
						Name: "Route",
						Fields: graphql.Fields{
							"id": {Type: graphql.ID()},
						},
					})},
				},
			}),
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Schema must contain unique named types but contains multiple types named "Route".`),
		))
	})

	It("rejects input type as field type", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"route": {Type: newRouteType},
				},
			}),
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Query.route field type must be an output type but got: NewRoute."),
		))
	})

	It("rejects object without fields", func() {
		_, err := graphql.NewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
			}),
		})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Query fields must be an object with field names as keys."),
		))
	})
})
