// Command subwaylog logs subway rides from the terminal: it classifies a car
// number against the rolling-stock dataset, records the ride, and manages the
// ride history (list, delete, clear, import, export).
//
// Storage is selected through SUBWAYLOG_STORAGE_DRIVER and friends; export
// destinations through SUBWAYLOG_BLOB_DRIVER and friends. Setting
// SUBWAYLOG_LOG_JSON=true emits operation logs as JSON lines on stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"subwaylog/internal/blob"
	"subwaylog/internal/infra/kv"
	"subwaylog/internal/service"
)

var exitFunc = os.Exit

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "subwaylog:", err)
		exitFunc(1)
	}
}

const usage = `usage: subwaylog <command> [arguments]

commands:
  log <car-number> <line-id>   record a ride
  rides                        list the ride history
  delete <ride-id>             delete one ride
  clear                        delete the whole ride history
  import <file>                replace the history with a JSON array document
  export [-o file]             write the export document (default: blob store)
  reseed                       restore the default dataset
  dataset                      print the current dataset
`

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("missing command")
	}

	store, err := kv.Open(ctx)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	var opts []service.Option
	if os.Getenv("SUBWAYLOG_LOG_JSON") == "true" {
		opts = append(opts, service.WithLogger(service.NewJSONLogger(os.Stderr)))
	}
	svc := service.New(store, opts...)

	switch cmd := args[0]; cmd {
	case "log":
		if len(args) != 3 {
			return fmt.Errorf("usage: subwaylog log <car-number> <line-id>")
		}
		record, err := svc.LogRide(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "logged %s: car %s on line %s (%s, division %s)\n",
			record.ID, record.TrainNumber, record.Line, record.Model, record.Division)
		return nil

	case "rides":
		rides := svc.Rides(ctx)
		if len(rides) == 0 {
			fmt.Fprintln(out, "no rides logged")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCAR\tLINE\tMODEL\tDIVISION\tWHEN")
		for _, r := range rides {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.TrainNumber, r.Line, r.Model, r.Division, r.Timestamp)
		}
		return tw.Flush()

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: subwaylog delete <ride-id>")
		}
		if !svc.DeleteRide(ctx, args[1]) {
			return fmt.Errorf("no ride with id %s", args[1])
		}
		fmt.Fprintf(out, "deleted %s\n", args[1])
		return nil

	case "clear":
		svc.ClearRides(ctx)
		fmt.Fprintln(out, "ride history cleared")
		return nil

	case "import":
		if len(args) != 2 {
			return fmt.Errorf("usage: subwaylog import <file>")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read import document: %w", err)
		}
		count, err := svc.ImportRides(ctx, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d rides\n", count)
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		fs.SetOutput(out)
		outFile := fs.String("o", "", "write the document to a file instead of the blob store")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *outFile != "" {
			doc, name, err := svc.ExportDocument(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(*outFile, doc, 0o644); err != nil {
				return fmt.Errorf("write export document: %w", err)
			}
			fmt.Fprintf(out, "exported %s to %s\n", name, *outFile)
			return nil
		}
		blobs, err := blob.OpenFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("open blob store: %w", err)
		}
		info, err := service.New(store, append(opts, service.WithBlobStore(blobs))...).ExportRides(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %s (%d bytes) via %s\n", info.Key, info.Size, blobs.Driver())
		return nil

	case "reseed":
		snap := svc.ReseedDataset(ctx)
		fmt.Fprintf(out, "dataset reseeded: %d models, %d lines\n", len(snap.RollingStock), len(snap.Lines))
		return nil

	case "dataset":
		snap := svc.DatasetSnapshot(ctx)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MODEL\tDIVISION\tRANGES")
		for _, entry := range snap.RollingStock {
			fmt.Fprintf(tw, "%s\t%s\t", entry.Model, entry.Division)
			for i, r := range entry.Ranges {
				if i > 0 {
					fmt.Fprint(tw, ", ")
				}
				fmt.Fprintf(tw, "%d-%d", r.Low, r.High)
			}
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, "\nLINE\tDIVISION\tCOLOR\tTERMINALS")
		for _, line := range snap.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s / %s\n", line.ID, line.Division, line.Color, line.Terminals[0], line.Terminals[1])
		}
		return tw.Flush()

	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil

	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
