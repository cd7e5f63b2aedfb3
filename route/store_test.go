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

package route_test

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/botobag/routes/route"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var (
		store  *route.Store
		userID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	)

	BeforeEach(func() {
		store = route.NewStore()
	})

	It("returns the created route", func() {
		created, err := store.Create(route.NewRoute{UserID: userID})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(created.ID).ShouldNot(Equal(uuid.Nil))
		Expect(created.ID.Version()).Should(Equal(uuid.Version(4)))
		Expect(created.UserID).Should(Equal(userID))
		Expect(created.Status).Should(Equal(route.StatusActive))

		got, err := store.Get(created.ID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(got).Should(Equal(created))
		Expect(store.Len()).Should(Equal(1))
	})

	It("fails with ErrNotFound for unknown id", func() {
		_, err := store.Get(uuid.MustParse("22222222-2222-2222-2222-222222222222"))
		Expect(errors.Is(err, route.ErrNotFound)).Should(BeTrue())
		Expect(err.Error()).Should(ContainSubstring("22222222-2222-2222-2222-222222222222"))
	})

	It("isolates stored routes from copies handed out", func() {
		created, err := store.Create(route.NewRoute{UserID: userID})
		Expect(err).ShouldNot(HaveOccurred())

		got, err := store.Get(created.ID)
		Expect(err).ShouldNot(HaveOccurred())
		got.Status = route.StatusFinished
		got.UserID = uuid.Nil

		again, err := store.Get(created.ID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(again).Should(Equal(created))
	})

	It("retries id generation on collision", func() {
		first := uuid.MustParse("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa")
		second := uuid.MustParse("bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb")
		ids := []uuid.UUID{first, first, first, second}
		store = route.NewStore(route.WithIDGenerator(func() (uuid.UUID, error) {
			id := ids[0]
			ids = ids[1:]
			return id, nil
		}))

		a, err := store.Create(route.NewRoute{UserID: userID})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(a.ID).Should(Equal(first))

		b, err := store.Create(route.NewRoute{UserID: userID})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(b.ID).Should(Equal(second))

		// The first route was not overwritten.
		got, err := store.Get(first)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(got).Should(Equal(a))
		Expect(store.Len()).Should(Equal(2))
	})

	It("gives up after bounded attempts", func() {
		id := uuid.MustParse("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa")
		calls := 0
		store = route.NewStore(
			route.WithMaxIDAttempts(3),
			route.WithIDGenerator(func() (uuid.UUID, error) {
				calls++
				return id, nil
			}))

		_, err := store.Create(route.NewRoute{UserID: userID})
		Expect(err).ShouldNot(HaveOccurred())

		_, err = store.Create(route.NewRoute{UserID: userID})
		Expect(errors.Is(err, route.ErrIDExhausted)).Should(BeTrue())
		Expect(calls).Should(Equal(4))
		Expect(store.Len()).Should(Equal(1))
	})

	It("reports failure of the id generator", func() {
		store = route.NewStore(route.WithIDGenerator(func() (uuid.UUID, error) {
			return uuid.Nil, errors.New("entropy exhausted")
		}))

		_, err := store.Create(route.NewRoute{UserID: userID})
		Expect(err).Should(MatchError(ContainSubstring("entropy exhausted")))
		Expect(store.Len()).Should(Equal(0))
	})

	It("creates unique routes concurrently", func() {
		const (
			numWriters = 16
			numCreates = 64
		)

		var (
			wg    sync.WaitGroup
			mutex sync.Mutex
			seen  = map[uuid.UUID]route.Route{}
		)

		for i := 0; i < numWriters; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for j := 0; j < numCreates; j++ {
					created, err := store.Create(route.NewRoute{UserID: userID})
					Expect(err).ShouldNot(HaveOccurred())

					// Readers see the route as soon as Create returns.
					got, err := store.Get(created.ID)
					Expect(err).ShouldNot(HaveOccurred())
					Expect(got).Should(Equal(created))

					mutex.Lock()
					seen[created.ID] = created
					mutex.Unlock()
				}
			}()
		}
		wg.Wait()

		Expect(seen).Should(HaveLen(numWriters * numCreates))
		Expect(store.Len()).Should(Equal(numWriters * numCreates))
		for id, created := range seen {
			got, err := store.Get(id)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(got).Should(Equal(created))
		}
	})

	It("never exposes a route that is being created", func() {
		const numRounds = 200

		id := uuid.MustParse("33333333-3333-3333-3333-333333333333")
		expected := route.Route{
			ID:     id,
			UserID: userID,
			Status: route.StatusActive,
		}

		for round := 0; round < numRounds; round++ {
			racing := route.NewStore(route.WithIDGenerator(func() (uuid.UUID, error) {
				return id, nil
			}))

			var (
				wg      sync.WaitGroup
				created = make(chan struct{})
			)

			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				// Read until the route shows up after Create returned.
				for {
					got, err := racing.Get(id)
					if err != nil {
						Expect(errors.Is(err, route.ErrNotFound)).Should(BeTrue(), "%v", err)
					} else {
						Expect(got).Should(Equal(expected))
					}

					select {
					case <-created:
						if err == nil {
							return
						}
					default:
					}
				}
			}()

			got, err := racing.Create(route.NewRoute{UserID: userID})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(got).Should(Equal(expected))
			close(created)

			wg.Wait()
		}
	})
})

var _ = Describe("Status", func() {
	It("prints its name", func() {
		Expect(route.StatusActive.String()).Should(Equal("Active"))
		Expect(route.StatusFinished.String()).Should(Equal("Finished"))
		Expect(route.Status(7).String()).Should(Equal("Unknown"))
	})
})
