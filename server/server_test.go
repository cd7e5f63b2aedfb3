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

package server_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/botobag/routes/config"
	"github.com/botobag/routes/route"
	"github.com/botobag/routes/schema"
	"github.com/botobag/routes/server"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// lockedBuffer is a bytes.Buffer safe for concurrent use.
type lockedBuffer struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.String()
}

type graphqlResponse struct {
	Data   map[string]map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

var _ = Describe("Server", func() {
	const userID = "11111111-1111-1111-1111-111111111111"

	var (
		logs   *lockedBuffer
		store  *route.Store
		srv    *server.Server
		client *http.Client
		ts     *httptest.Server
	)

	BeforeEach(func() {
		logs = &lockedBuffer{}
		store = route.NewStore()

		var err error
		srv, err = server.New(config.Default(), zerolog.New(logs), &schema.State{Routes: store})
		Expect(err).ShouldNot(HaveOccurred())

		ts = httptest.NewServer(srv.Handler())
		client = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	})

	AfterEach(func() {
		ts.Close()
	})

	post := func(body string) (int, graphqlResponse) {
		resp, err := client.Post(ts.URL+"/graphql", "application/json", strings.NewReader(body))
		Expect(err).ShouldNot(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.Header.Get("Content-Type")).Should(HavePrefix("application/json"))

		var result graphqlResponse
		Expect(jsoniter.NewDecoder(resp.Body).Decode(&result)).Should(Succeed())
		return resp.StatusCode, result
	}

	It("redirects root to GraphiQL", func() {
		resp, err := client.Get(ts.URL + "/")
		Expect(err).ShouldNot(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).Should(Equal(http.StatusPermanentRedirect))
		Expect(resp.Header.Get("Location")).Should(Equal("/graphiql"))
	})

	It("serves GraphiQL pointed at the GraphQL endpoint", func() {
		resp, err := client.Get(ts.URL + "/graphiql")
		Expect(err).ShouldNot(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).Should(HavePrefix("text/html"))

		body, err := io.ReadAll(resp.Body)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(body)).Should(ContainSubstring("GraphiQL"))
		Expect(string(body)).Should(ContainSubstring(`graphql";`))
	})

	It("creates and reads a route", func() {
		status, result := post(fmt.Sprintf(`{
			"query": "mutation ($input: NewRoute!) { createRoute(newRoute: $input) { id userId status } }",
			"variables": { "input": { "userId": %q } }
		}`, userID))
		Expect(status).Should(Equal(http.StatusOK))
		Expect(result.Errors).Should(BeEmpty())

		created := result.Data["createRoute"]
		Expect(created).Should(HaveKeyWithValue("userId", userID))
		Expect(created).Should(HaveKeyWithValue("status", "ACTIVE"))
		Expect(store.Len()).Should(Equal(1))

		status, result = post(fmt.Sprintf(`{
			"query": "query ($id: Uuid!) { route(id: $id) { id userId status } }",
			"variables": { "id": %q }
		}`, created["id"]))
		Expect(status).Should(Equal(http.StatusOK))
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data["route"]).Should(Equal(created))
	})

	It("responds 400 for unknown route", func() {
		status, result := post(`{"query": "{ route(id: \"22222222-2222-2222-2222-222222222222\") { id } }"}`)
		Expect(status).Should(Equal(http.StatusBadRequest))
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(Equal(`Route "22222222-2222-2222-2222-222222222222" not found.`))
		Expect(result.Errors[0].Extensions).Should(HaveKeyWithValue("code", "NOT_FOUND"))
	})

	It("responds 400 for invalid query", func() {
		status, result := post(`{"query": "{ routes { id } }"}`)
		Expect(status).Should(Equal(http.StatusBadRequest))
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(ContainSubstring(`Cannot query field "routes" on type "Query".`))
	})

	It("responds 400 for malformed body", func() {
		status, result := post(`{"query": nul`)
		Expect(status).Should(Equal(http.StatusBadRequest))
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(Equal("request body is invalid JSON"))
	})

	It("responds 400 for selections that cannot be merged", func() {
		status, result := post(fmt.Sprintf(
			`{"query": "mutation { createRoute(newRoute: { userId: \"%s\" }) { id } }"}`, userID))
		Expect(status).Should(Equal(http.StatusOK))
		id := result.Data["createRoute"]["id"].(string)

		status, result = post(fmt.Sprintf(`{"query": "{ route(id: \"%s\") { id: userId id } }"}`, id))
		Expect(status).Should(Equal(http.StatusBadRequest))
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(HavePrefix(`Fields "id" conflict because userId and id are different fields.`))

		status, result = post(fmt.Sprintf(
			`{"query": "{ route(id: \"%s\") { id } route(id: \"22222222-2222-2222-2222-222222222222\") { id } }"}`, id))
		Expect(status).Should(Equal(http.StatusBadRequest))
		Expect(result.Data).Should(BeNil())
		Expect(result.Errors).Should(HaveLen(1))
		Expect(result.Errors[0].Message).Should(HavePrefix(`Fields "route" conflict because they have differing arguments.`))
	})

	It("accepts GraphQL documents and form bodies", func() {
		resp, err := client.Post(ts.URL+"/graphql", "application/graphql", strings.NewReader(
			fmt.Sprintf(`mutation { createRoute(newRoute: { userId: "%s" }) { userId } }`, userID)))
		Expect(err).ShouldNot(HaveOccurred())
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		Expect(string(body)).Should(MatchJSON(fmt.Sprintf(`{"data": {"createRoute": {"userId": %q}}}`, userID)))

		resp, err = client.PostForm(ts.URL+"/graphql", url.Values{"query": {"{ __typename }"}})
		Expect(err).ShouldNot(HaveOccurred())
		body, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		Expect(string(body)).Should(MatchJSON(`{"data": {"__typename": "Query"}}`))
		Expect(store.Len()).Should(Equal(1))
	})

	It("only accepts POST for GraphQL endpoint", func() {
		resp, err := client.Get(ts.URL + "/graphql?query=%7B__typename%7D")
		Expect(err).ShouldNot(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).Should(Equal(http.StatusMethodNotAllowed))
	})

	It("writes access log", func() {
		resp, err := client.Get(ts.URL + "/graphiql")
		Expect(err).ShouldNot(HaveOccurred())
		resp.Body.Close()

		Expect(logs.String()).Should(ContainSubstring(`"path":"/graphiql"`))
		Expect(logs.String()).Should(ContainSubstring(`"status":200`))
	})

	It("serves concurrent requests", func() {
		const numRequests = 32

		done := make(chan string, numRequests)
		for i := 0; i < numRequests; i++ {
			go func() {
				defer GinkgoRecover()
				status, result := post(fmt.Sprintf(
					`{"query": "mutation { createRoute(newRoute: { userId: \"%s\" }) { id } }"}`, userID))
				Expect(status).Should(Equal(http.StatusOK))
				done <- result.Data["createRoute"]["id"].(string)
			}()
		}

		ids := map[string]bool{}
		for i := 0; i < numRequests; i++ {
			var id string
			Eventually(done, 5*time.Second).Should(Receive(&id))
			ids[id] = true
		}
		Expect(ids).Should(HaveLen(numRequests))
		Expect(store.Len()).Should(Equal(numRequests))
	})
})

var _ = Describe("Server.Serve", func() {
	It("stops when context is cancelled", func() {
		cfg := config.Default()
		cfg.ShutdownTimeout = time.Second
		srv, err := server.New(cfg, zerolog.Nop(), &schema.State{Routes: route.NewStore()})
		Expect(err).ShouldNot(HaveOccurred())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ShouldNot(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		result := make(chan error, 1)
		go func() {
			result <- srv.Serve(ctx, listener)
		}()

		url := "http://" + listener.Addr().String() + "/graphiql"
		Eventually(func() (int, error) {
			resp, err := http.Get(url)
			if err != nil {
				return 0, err
			}
			resp.Body.Close()
			return resp.StatusCode, nil
		}, 5*time.Second).Should(Equal(http.StatusOK))

		cancel()
		Eventually(result, 5*time.Second).Should(Receive(BeNil()))
	})

	It("fails to run on invalid address", func() {
		cfg := config.Default()
		cfg.Addr = "256.0.0.1:99999"
		srv, err := server.New(cfg, zerolog.Nop(), &schema.State{Routes: route.NewStore()})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(srv.Run(context.Background())).Should(MatchError(ContainSubstring("listen on 256.0.0.1:99999")))
	})
})
