package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Logger    *slog.Logger
	Libraries docidx.LibraryService
	Loader    *fs.Loader
	Fetcher   docidx.Fetcher
	Locator   docidx.ScriptLocator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to a YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Build   BuildCmd   `cmd:"" help:"Build a serialized index bundle from raw item records"`
	Add     AddCmd     `cmd:"" help:"Store the libraries of a bundle, index script or docs URL"`
	List    ListCmd    `cmd:"" help:"List stored libraries"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored library"`
	Inspect InspectCmd `cmd:"" help:"Print every item of a stored library"`
	Search  SearchCmd  `cmd:"" help:"Search stored libraries"`
	Serve   ServeCmd   `cmd:"" help:"Serve search and metrics over HTTP"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Inputs []string `arg:"" help:"Raw library JSON files" type:"existingfile"`
	Output string   `short:"o" required:"" help:"Bundle file to write"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Source string `arg:"" help:"Bundle file, search-index.js file, or documentation URL"`
	Force  bool   `short:"f" help:"Replace libraries that are already stored"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Library name"`
	Force bool   `help:"Confirm deletion"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Name string `arg:"" help:"Library name"`
	Kind string `short:"k" help:"Only print items of this kind"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query, optionally kind:term or a::b::term"`
	Library string `short:"l" help:"Only search this library"`
	Limit   int    `short:"n" help:"Maximum number of results (defaults to search.limit)"`
	JSON    bool   `help:"Print results as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:"localhost:8080" help:"Listen address"`
}
