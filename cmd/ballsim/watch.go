package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

var (
	watchFor time.Duration
	watchOut string
)

func watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "run in real time, rewriting an SVG frame every second",
		RunE:  runWatch,
	}
	cmd.Flags().DurationVar(&watchFor, "for", 0, "stop after this long (default: until interrupted)")
	cmd.Flags().StringVarP(&watchOut, "out", "o", "live.svg", "output file")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, _, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := sim.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	loop := sim.NewLoop(s, cfg.FPS)
	surface := export.NewSVG(s.Bounds())

	ctx := cmd.Context()
	if watchFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFor)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(ctx, surface) })
	g.Go(func() error {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
			}
			var doc string
			var energy float64
			err := loop.Do(ctx, func(s *sim.Session) {
				doc = surface.String()
				energy = physics.KineticEnergy(s.Balls())
			})
			if err != nil {
				return nil
			}
			if err := os.WriteFile(watchOut, []byte(doc), 0644); err != nil {
				return err
			}
			log.Debug("frame written", zap.String("path", watchOut), zap.Float64("energy", energy))
		}
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, dynamo.ErrStopped) {
		return err
	}
	// The loop has returned, so the surface is ours again.
	if err := surface.WriteFile(watchOut); err != nil {
		return err
	}
	log.Info("watch finished", zap.Int("tick", s.Tick()), zap.String("path", watchOut))
	return nil
}
