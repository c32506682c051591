// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"showcase/internal/backend"
	"showcase/internal/cache"
	"showcase/internal/config"
	"showcase/internal/revalidate"
	"showcase/internal/store"
)

var (
	revalidateTag  string
	revalidatePath string
	revalidateAll  bool
)

var revalidateCmd = &cobra.Command{
	Use:   "revalidate",
	Short: "Drop cached pages by tag, by path or entirely",
	Example: `  showcase revalidate --tag projects
  showcase revalidate --path /work/alpha
  showcase revalidate --all`,
	Args: cobra.NoArgs,
	RunE: runRevalidate,
}

func init() {
	f := revalidateCmd.Flags()
	f.StringVar(&revalidateTag, "tag", "", "Content tag to clear (projects, testimonials, services, faqs, process)")
	f.StringVar(&revalidatePath, "path", "", "Page path to clear")
	f.BoolVar(&revalidateAll, "all", false, "Clear every cached page")
	revalidateCmd.MarkFlagsMutuallyExclusive("tag", "path", "all")
	revalidateCmd.MarkFlagsOneRequired("tag", "path", "all")
}

// revalidateScope turns the flags into a scope and target.
func revalidateScope(tag, path string, all bool) (revalidate.Scope, string, error) {
	switch {
	case all && tag == "" && path == "":
		return revalidate.ScopeAll, "", nil
	case tag != "" && path == "" && !all:
		return revalidate.ScopeTag, tag, nil
	case path != "" && tag == "" && !all:
		return revalidate.ScopePath, path, nil
	}
	return "", "", errors.New("exactly one of --tag, --path or --all is required")
}

func runRevalidate(cmd *cobra.Command, args []string) error {
	scope, target, err := revalidateScope(revalidateTag, revalidatePath, revalidateAll)
	if err != nil {
		return err
	}
	if !cfg.CacheEnabled() {
		return errors.New("VALKEY_HOST is not set, there is no page cache to clear")
	}

	ctx := cmd.Context()
	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer client.Close()
	pc := cache.NewPageCache(client, cfg.PageCacheTTL)

	switch scope {
	case revalidate.ScopeAll:
		err = pc.RevalidateAll(ctx)
	case revalidate.ScopeTag:
		err = pc.RevalidateTag(ctx, target)
	default:
		err = pc.RevalidatePath(ctx, target)
	}
	if err != nil {
		return err
	}

	// The audit trail lives in Postgres; the memory backend has none to keep.
	if cfg.Backend == config.BackendPostgres {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		store.NewCacheLogStore(backend.NewPostgres(db)).Log(ctx, scope, target, "cli")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "revalidated %s %s\n", scope, target)
	return nil
}
