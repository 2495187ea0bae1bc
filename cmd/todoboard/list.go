package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/todoboard/internal/board"
	"github.com/nhle/todoboard/internal/model"
	"github.com/nhle/todoboard/internal/report"
	"github.com/nhle/todoboard/internal/source"
	"github.com/nhle/todoboard/internal/source/placeholder"
)

var (
	listSearch string
	listWidth  int
)

// listCmd prints the joined table once and exits.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print todos as a table",
	Long: `Fetches todos and users once and prints the joined table.

A failed fetch is logged and treated as an empty collection: the table
is printed without rows (todos) or with Unknown owners (users).`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show todos whose title contains this text (case-sensitive)")
	listCmd.Flags().IntVar(&listWidth, "width", 0, "Maximum table width (0: fit content)")
}

func runList(cmd *cobra.Command, args []string) error {
	src := placeholder.NewAdapter(cfg.Source, logger)
	todos, users := fetchAll(commandContext(cmd), src, logger)

	b := board.New()
	b.SetTodos(todos)
	b.SetUsers(users)
	b.Search(listSearch)

	return report.Render(cmd.OutOrStdout(), b.Rows(), b.Stats(), listWidth)
}

// fetchAll loads both collections concurrently. A failure of one does
// not cancel the other; failed collections come back nil.
func fetchAll(ctx context.Context, src source.Source, logger *zap.Logger) ([]model.Todo, []model.User) {
	var (
		g     errgroup.Group
		todos []model.Todo
		users []model.User
	)

	g.Go(func() error {
		var err error
		todos, err = src.FetchTodos(ctx)
		if err != nil {
			logger.Warn("fetch failed", zap.String("collection", "todos"), zap.Error(err))
			todos = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = src.FetchUsers(ctx)
		if err != nil {
			logger.Warn("fetch failed", zap.String("collection", "users"), zap.Error(err))
			users = nil
		}
		return nil
	})

	_ = g.Wait()
	return todos, users
}
