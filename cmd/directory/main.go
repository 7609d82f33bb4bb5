// Package main - точка входа для CLI справочника студентов.
//
// Справочник хранит студентов в памяти и держит три представления
// согласованными: индекс по ID, общий список в порядке добавления и
// списки факультетов, отсортированные по курсу.
//
// Архитектура:
// - Domain: студент, факультеты, курсы, порт импорта
// - Application: Commands/Queries и обработчики событий
// - Infrastructure: справочник в памяти, CSV-источник, шина событий
// - Interface: команды cobra и презентеры
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alem-hub/student-directory/internal/interface/cli"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.GetExitCode(err)
}
