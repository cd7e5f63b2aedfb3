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

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/botobag/routes/config"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("binds to port 8080 by default", func() {
		c := config.Default()
		Expect(c.Addr).Should(Equal("0.0.0.0:8080"))
		Expect(c.Validate()).Should(Succeed())
	})

	It("treats empty document as defaults", func() {
		c, err := config.Parse(nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(c).Should(Equal(config.Default()))
	})

	It("overrides defaults with YAML values", func() {
		c, err := config.Parse([]byte(`
addr: 127.0.0.1:9090
max_body_size: 1024
operation_cache_size: 16
max_concurrency: 0
shutdown_timeout: 3s
log:
  level: debug
  format: console
`))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(c).Should(Equal(config.Config{
			Addr:               "127.0.0.1:9090",
			MaxBodySize:        1024,
			OperationCacheSize: 16,
			MaxConcurrency:     0,
			ShutdownTimeout:    3 * time.Second,
			Log: config.LogConfig{
				Level:  "debug",
				Format: config.LogFormatConsole,
			},
		}))
	})

	It("keeps defaults for keys not given", func() {
		c, err := config.Parse([]byte("log:\n  level: warn\n"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(c.Addr).Should(Equal("0.0.0.0:8080"))
		Expect(c.Log.Level).Should(Equal("warn"))
		Expect(c.Log.Format).Should(Equal(config.LogFormatJSON))
	})

	It("rejects unknown keys", func() {
		_, err := config.Parse([]byte("port: 8080\n"))
		Expect(err).Should(MatchError(ContainSubstring("field port not found")))
	})

	DescribeTable("rejects invalid values",
		func(data string, message string) {
			_, err := config.Parse([]byte(data))
			Expect(err).Should(MatchError(ContainSubstring(message)))
		},
		Entry("addr without port", "addr: localhost\n", `invalid addr "localhost"`),
		Entry("zero body size", "max_body_size: 0\n", "max_body_size must be positive"),
		Entry("zero cache size", "operation_cache_size: 0\n", "operation_cache_size must be positive"),
		Entry("negative concurrency", "max_concurrency: -1\n", "max_concurrency must not be negative"),
		Entry("zero shutdown timeout", "shutdown_timeout: 0s\n", "shutdown_timeout must be positive"),
		Entry("unknown log level", "log:\n  level: loud\n", "invalid log level"),
		Entry("empty log level", "log:\n  level: \"\"\n", "log level must not be empty"),
		Entry("unknown log format", "log:\n  format: xml\n", `invalid log format "xml"`),
	)

	Describe("Load", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "routes-config")
			Expect(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("reads the file", func() {
			path := filepath.Join(dir, "routes.yaml")
			Expect(os.WriteFile(path, []byte("addr: :8081\n"), 0o600)).Should(Succeed())

			c, err := config.Load(path)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Addr).Should(Equal(":8081"))
		})

		It("names the file in errors", func() {
			path := filepath.Join(dir, "missing.yaml")
			_, err := config.Load(path)
			Expect(err).Should(MatchError(ContainSubstring(path)))
		})
	})

	Describe("NewLogger", func() {
		It("writes JSON at the configured level", func() {
			var buf bytes.Buffer
			logger, err := config.LogConfig{Level: "warn", Format: config.LogFormatJSON}.NewLogger(&buf)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(logger.GetLevel()).Should(Equal(zerolog.WarnLevel))

			logger.Info().Msg("dropped")
			logger.Warn().Msg("kept")
			Expect(buf.String()).ShouldNot(ContainSubstring("dropped"))
			Expect(buf.String()).Should(ContainSubstring(`"message":"kept"`))
		})

		It("rejects invalid format", func() {
			_, err := config.LogConfig{Level: "info", Format: "xml"}.NewLogger(&bytes.Buffer{})
			Expect(err).Should(HaveOccurred())
		})
	})
})
