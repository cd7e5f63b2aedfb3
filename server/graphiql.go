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

package server

import (
	"bytes"
	_ "embed" // for graphiql.html
	"html/template"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/hlog"
)

//go:embed graphiql.html
var graphiqlSource string

var graphiqlTemplate = template.Must(template.New("graphiql").Parse(graphiqlSource))

// graphiqlHandler serves the GraphiQL IDE that sends queries to endpoint. The page is rendered once.
func graphiqlHandler(endpoint string) (http.HandlerFunc, error) {
	var page bytes.Buffer
	err := graphiqlTemplate.Execute(&page, struct {
		Title    string
		Endpoint string
	}{
		Title:    "GraphiQL",
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "render GraphiQL page")
	}

	body := page.Bytes()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("failed to write GraphiQL page")
		}
	}, nil
}
