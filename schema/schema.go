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

// Package schema defines the GraphQL schema of the route service and binds its root fields to
// the operations on the route store.
package schema

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/route"
)

// RouteStore is the store the operations read from and write to. *route.Store satisfies it.
type RouteStore interface {
	Get(id uuid.UUID) (route.Route, error)
	Create(newRoute route.NewRoute) (route.Route, error)
}

var _ RouteStore = (*route.Store)(nil)

// State is supplied to every operation as the application context of the execution.
type State struct {
	Routes RouteStore
}

// OperationHandler performs the operation of a root field.
type OperationHandler func(ctx context.Context, state *State, args graphql.ArgumentValues) (interface{}, error)

// QueryHandlers maps fields of the Query type to their handlers.
var QueryHandlers = map[string]OperationHandler{
	"route": getRoute,
}

// MutationHandlers maps fields of the Mutation type to their handlers.
var MutationHandlers = map[string]OperationHandler{
	"createRoute": createRoute,
}

// New builds the route schema.
func New() (*graphql.Schema, error) {
	t, err := newTypes()
	if err != nil {
		return nil, errors.Wrap(err, "define types")
	}

	query, err := newRootObject("Query", graphql.Fields{
		"route": {
			Description: "Get a route by its id",
			Type:        graphql.MustNewNonNullOf(t.route),
			Args: graphql.ArgumentConfigMap{
				"id": {
					Type: graphql.MustNewNonNullOf(t.uuid),
				},
			},
		},
	}, QueryHandlers)
	if err != nil {
		return nil, err
	}

	mutation, err := newRootObject("Mutation", graphql.Fields{
		"createRoute": {
			Description: "Create an active route for a user",
			Type:        graphql.MustNewNonNullOf(t.route),
			Args: graphql.ArgumentConfigMap{
				"newRoute": {
					Type: graphql.MustNewNonNullOf(t.newRoute),
				},
			},
		},
	}, MutationHandlers)
	if err != nil {
		return nil, err
	}

	schema, err := graphql.NewSchema(&graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build schema")
	}
	return schema, nil
}

// newRootObject defines a root type whose fields resolve through the handlers. Every field must
// have exactly one handler.
func newRootObject(name string, fields graphql.Fields, handlers map[string]OperationHandler) (*graphql.Object, error) {
	for fieldName, handler := range handlers {
		config, exists := fields[fieldName]
		if !exists {
			return nil, errors.Newf("handler for %s.%s has no field", name, fieldName)
		}
		config.Resolver = bindHandler(handler)
		fields[fieldName] = config
	}

	for fieldName, config := range fields {
		if config.Resolver == nil {
			return nil, errors.Newf("field %s.%s has no handler", name, fieldName)
		}
	}

	object, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:   name,
		Fields: fields,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "define %s", name)
	}
	return object, nil
}

func bindHandler(handler OperationHandler) graphql.FieldResolver {
	return graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
		state, ok := info.AppContext().(*State)
		if !ok || state == nil || state.Routes == nil {
			return nil, graphql.NewError("Route service state is not available.", graphql.ErrKindInternal)
		}
		return handler(ctx, state, info.Args())
	})
}

func getRoute(ctx context.Context, state *State, args graphql.ArgumentValues) (interface{}, error) {
	id := args.Get("id").(uuid.UUID)

	r, err := state.Routes.Get(id)
	if err != nil {
		if errors.Is(err, route.ErrNotFound) {
			zerolog.Ctx(ctx).Debug().Stringer("id", id).Msg("route not found")
			return nil, graphql.NewError(`Route "`+id.String()+`" not found.`,
				graphql.ErrorExtensions{"code": "NOT_FOUND"}, err)
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Stringer("id", id).Msg("get route")
	return r, nil
}

func createRoute(ctx context.Context, state *State, args graphql.ArgumentValues) (interface{}, error) {
	input := args.Get("newRoute").(map[string]interface{})
	newRoute := route.NewRoute{
		UserID: input["userId"].(uuid.UUID),
	}

	r, err := state.Routes.Create(newRoute)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Stringer("id", r.ID).
		Stringer("user_id", r.UserID).
		Msg("created route")
	return r, nil
}
