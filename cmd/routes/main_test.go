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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/botobag/routes/config"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("routes command", func() {
	// parse executes the root command with args and returns the configuration it would run with.
	parse := func(args ...string) (config.Config, error) {
		var cfg config.Config
		cmd := newRootCommand(func(ctx context.Context, c config.Config) error {
			cfg = c
			return nil
		})
		cmd.SetArgs(append([]string{}, args...))
		err := cmd.Execute()
		return cfg, err
	}

	It("uses defaults without flags", func() {
		cfg, err := parse()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg).Should(Equal(config.Default()))
	})

	It("overrides defaults with flags", func() {
		cfg, err := parse("--addr", "127.0.0.1:9000", "--log-level", "debug", "--log-format", "console")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.Addr).Should(Equal("127.0.0.1:9000"))
		Expect(cfg.Log.Level).Should(Equal("debug"))
		Expect(cfg.Log.Format).Should(Equal(config.LogFormatConsole))
	})

	It("lets flags take precedence over configuration file", func() {
		dir, err := os.MkdirTemp("", "routes-cmd")
		Expect(err).ShouldNot(HaveOccurred())
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "routes.yaml")
		Expect(os.WriteFile(path, []byte("addr: 127.0.0.1:7000\nmax_concurrency: 2\n"), 0o600)).Should(Succeed())

		cfg, err := parse("--config", path, "--addr", ":7001")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.Addr).Should(Equal(":7001"))
		Expect(cfg.MaxConcurrency).Should(Equal(2))
	})

	It("rejects invalid flag values", func() {
		_, err := parse("--log-format", "xml")
		Expect(err).Should(MatchError(ContainSubstring("invalid configuration")))
	})

	It("rejects empty log level", func() {
		_, err := parse("--log-level=")
		Expect(err).Should(MatchError(ContainSubstring("log level must not be empty")))
	})
})
