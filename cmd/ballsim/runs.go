package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/storage"
)

var (
	ballIdx   int
	fieldName string
	xAxis     string
	yAxis     string
	jsonOut   string
)

// storedRunCommands are the commands that read runs saved with run --save.
func storedRunCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot one ball's field over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&ballIdx, "ball", 0, "ball index")
	plotCmd.Flags().StringVar(&fieldName, "field", "", "x, y, vx, vy or speed (default: x and y)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run-id]",
		Short: "draw a ball's portrait in two fields",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().IntVar(&ballIdx, "ball", 0, "ball index")
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "x", "horizontal field")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "y", "vertical field")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run-id]",
		Short: "dominant bounce period per ball",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	return []*cobra.Command{listCmd, plotCmd, phaseCmd, analyzeCmd, exportCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBALLS\tTICKS\tFRAMES\tENERGY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.3f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Balls,
			run.Ticks,
			run.Frames,
			run.Metrics["energy"],
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) < 2 {
		return nil, nil, fmt.Errorf("run %s has %d frames, record with --every", runID, len(frames))
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	fields := []analysis.Field{analysis.FieldX, analysis.FieldY}
	if fieldName != "" {
		fields = []analysis.Field{analysis.Field(fieldName)}
	}
	for _, f := range fields {
		data, err := analysis.Series(frames, ballIdx, f)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("ball %d %s vs tick", ballIdx, f)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	p, err := analysis.BallPortrait(frames, ballIdx, analysis.Field(xAxis), analysis.Field(yAxis))
	if err != nil {
		return err
	}
	fmt.Printf("ball %d: %s vs %s\n\n", ballIdx, yAxis, xAxis)
	fmt.Print(analysis.PhasePortraitToASCII(p, 80, 24))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	step := frames[1].Tick - frames[0].Tick

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALL\tPERIOD X\tPERIOD Y\tMEAN SPEED")
	for i := 0; i < meta.Balls; i++ {
		xs, err := analysis.Series(frames, i, analysis.FieldX)
		if err != nil {
			return err
		}
		ys, _ := analysis.Series(frames, i, analysis.FieldY)
		speeds, _ := analysis.Series(frames, i, analysis.FieldSpeed)
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\n", i,
			period(analysis.DominantPeriod(xs, step)),
			period(analysis.DominantPeriod(ys, step)),
			mean(speeds))
	}
	return w.Flush()
}

func period(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", p)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if jsonOut == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	if err := st.ExportJSONFile(jsonOut, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], jsonOut)
	return nil
}
