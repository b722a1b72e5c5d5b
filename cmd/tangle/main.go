// Command tangle renders a graph file as an interactive force-directed view.
//
//	tangle view graph.yaml --config tangle.yaml --watch
//
// The graph file lists named nodes and the links between them; see
// graphfile.go for the schema. With --watch, edits to the graph file reload
// the view in place while keeping the current pan, zoom, and filter.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/softbranch/tangle"
	"github.com/softbranch/tangle/scene"
)

var (
	flagConfig string
	flagWatch  bool
	flagWidth  int
	flagHeight int
	flagTitle  string
)

func main() {
	root := &cobra.Command{
		Use:           "tangle",
		Short:         "Interactive force-directed graph viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	view := &cobra.Command{
		Use:   "view <graph-file>",
		Short: "Open a graph file in an interactive window",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(args[0])
		},
	}
	view.Flags().StringVarP(&flagConfig, "config", "c", "", "widget configuration file (YAML)")
	view.Flags().BoolVarP(&flagWatch, "watch", "w", false, "reload the view when the graph file changes")
	view.Flags().IntVar(&flagWidth, "width", 960, "window width")
	view.Flags().IntVar(&flagHeight, "height", 720, "window height")
	view.Flags().StringVar(&flagTitle, "title", "tangle", "window title")
	root.AddCommand(view)

	if err := root.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func runView(path string) error {
	g, err := loadGraphFile(path)
	if err != nil {
		return err
	}

	sc := scene.NewScene()
	sc.ClearColor = scene.Color{R: 0.08, G: 0.09, B: 0.11, A: 1}
	w := tangle.New(sc, float64(flagWidth), float64(flagHeight))

	if flagConfig != "" {
		patch, err := loadConfigFile(flagConfig)
		if err != nil {
			return err
		}
		w.SetConfig(patch)
	}

	w.SetData(g)
	color.Green("loaded %s: %d nodes, %d links", path, len(g.Nodes), len(g.Links))

	w.OnSelectionChanged(func(n *tangle.Node) {
		if n != nil {
			fmt.Printf("selected %s\n", color.CyanString(n.Name))
		}
	})

	// Reloads are handed off to the update loop so all widget calls stay on
	// one goroutine.
	reload := make(chan struct{}, 1)
	if flagWatch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer watcher.Close()
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		go func() {
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return
					}
					if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
						select {
						case reload <- struct{}{}:
						default:
						}
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					color.Yellow("watch: %v", err)
				}
			}
		}()
	}

	sc.SetUpdateFunc(func() error {
		select {
		case <-reload:
			g, err := loadGraphFile(path)
			if err != nil {
				color.Yellow("reload skipped: %v", err)
				return nil
			}
			w.SetData(g)
			color.Green("reloaded %s: %d nodes, %d links", path, len(g.Nodes), len(g.Links))
		default:
		}
		return nil
	})

	return scene.Run(sc, scene.RunConfig{
		Title:  flagTitle,
		Width:  flagWidth,
		Height: flagHeight,
	})
}
