package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/xtreemfs-go/osd-storage/internal/config"
	osdconfig "github.com/xtreemfs-go/osd-storage/internal/config/osd"
	"github.com/xtreemfs-go/osd-storage/pkg/layout"
	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
)

func openLayout(cmd *cobra.Command) (*layout.Layout, error) {
	root, err := config.New(config.Prm{}, config.WithConfigFile(flagConfigFile))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := osdconfig.From(root)

	log := &logger.Logger{}
	log.Init(nil)

	opts := []layout.Option{
		layout.WithRoot(c.Root()),
		layout.WithPerm(fs.FileMode(c.Perm())),
		layout.WithMaxSubdirsPerDir(c.MaxSubdirsPerDir()),
		layout.WithMaxDirDepth(c.MaxDirDepth()),
		layout.WithLogger(log),
		layout.WithNoSync(true),
	}
	if c.ChecksumsEnabled() {
		opts = append(opts, layout.WithChecksumAlgorithm(c.ChecksumAlgorithm()))
	}

	l, err := layout.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("construct layout: %w", err)
	}
	if err := l.Open(true); err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}

	cmd.SilenceUsage = true
	return l, nil
}
