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

package schema

import (
	"context"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/route"
)

// types holds the named types of the route schema.
type types struct {
	uuid        *graphql.Scalar
	routeStatus *graphql.Enum
	route       *graphql.Object
	newRoute    *graphql.InputObject
}

func newTypes() (*types, error) {
	uuidType, err := newUUIDScalar()
	if err != nil {
		return nil, err
	}

	routeStatus, err := graphql.NewEnum(&graphql.EnumConfig{
		Name:        "RouteStatus",
		Description: "The lifecycle state of a route",
		Values: graphql.EnumValueConfigMap{
			"ACTIVE": {
				Value: route.StatusActive,
			},
			"FINISHED": {
				Value: route.StatusFinished,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	nonNullUUID := graphql.MustNewNonNullOf(uuidType)

	routeType, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:        "Route",
		Description: "A route",
		Fields: graphql.Fields{
			"id": {
				Type: nonNullUUID,
				Resolver: routeFieldResolver(func(r route.Route) interface{} {
					return r.ID
				}),
			},
			"userId": {
				Type: nonNullUUID,
				Resolver: routeFieldResolver(func(r route.Route) interface{} {
					return r.UserID
				}),
			},
			"status": {
				Type: graphql.MustNewNonNullOf(routeStatus),
				Resolver: routeFieldResolver(func(r route.Route) interface{} {
					return r.Status
				}),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	newRoute, err := graphql.NewInputObject(&graphql.InputObjectConfig{
		Name:        "NewRoute",
		Description: "A new route",
		Fields: graphql.InputFields{
			"userId": {
				Type: nonNullUUID,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &types{
		uuid:        uuidType,
		routeStatus: routeStatus,
		route:       routeType,
		newRoute:    newRoute,
	}, nil
}

// routeFieldResolver reads a field of the route.Route that is the source value.
func routeFieldResolver(get func(r route.Route) interface{}) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		switch r := source.(type) {
		case route.Route:
			return get(r), nil
		case *route.Route:
			if r != nil {
				return get(*r), nil
			}
		}
		return nil, graphql.NewError("Route cannot represent value: "+graphql.Inspect(source), graphql.ErrKindInternal)
	})
}
