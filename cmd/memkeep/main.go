package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeanpaul/memkeep/internal/config"
	"github.com/jeanpaul/memkeep/internal/engine"
	"github.com/jeanpaul/memkeep/internal/guide"
	"github.com/jeanpaul/memkeep/internal/store"
)

const version = "0.1.0"

func main() {
	addFlag := flag.String("add", "", "Add a memory with the given text")
	keywordsFlag := flag.String("keywords", "", "Comma-separated keywords (with -add or -edit)")
	alwaysFlag := flag.Bool("always", false, "Always inject (with -add or -edit)")
	textFlag := flag.String("text", "", "New memory text (with -edit)")
	listFlag := flag.Bool("list", false, "List stored memories")
	editFlag := flag.String("edit", "", "Edit the memory with the given ID")
	deleteFlag := flag.String("delete", "", "Delete the memory with the given ID")
	deleteAllFlag := flag.Bool("delete-all", false, "Back up and delete ALL memories")
	yesFlag := flag.Bool("yes", false, "Confirm destructive operations")
	backupsFlag := flag.Bool("backups", false, "List backup files")
	ingestFlag := flag.String("ingest", "", "Scan text for save commands ('-' reads stdin)")
	modelFlag := flag.Bool("model", false, "Treat ingested text as model-generated")
	injectFlag := flag.String("inject", "", "Build the injection block for the given context text")
	guideFlag := flag.Bool("guide", false, "Print the guide text for the configured language")
	diagFlag := flag.Bool("diag", false, "Show diagnostics")
	versionFlag := flag.Bool("version", false, "Print version")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("memkeep %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	st, err := store.New(cfg.StorePath, cfg.MinMemoryLength)
	if err != nil {
		// Keep going with an empty store; the file may be new or mangled.
		fmt.Fprintf(os.Stderr, "warning: %v (starting empty)\n", err)
	}

	guides, err := guide.LoadOverrides(cfg.GuideFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using built-in guide)\n", err)
	}

	eng := engine.New(cfg, st, guides)

	switch {
	case *addFlag != "":
		rec, err := eng.Add(*addFlag, *keywordsFlag, *alwaysFlag)
		if err != nil {
			fatal("Add failed: %v", err)
		}
		fmt.Printf("Saved %s\n", rec.ID)

	case *listFlag:
		printList(eng.List())

	case *editFlag != "":
		var text, keywords *string
		var always *bool
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "text":
				text = textFlag
			case "keywords":
				keywords = keywordsFlag
			case "always":
				always = alwaysFlag
			}
		})
		rec, err := eng.Update(*editFlag, text, keywords, always)
		if err != nil {
			fatal("Edit failed: %v", err)
		}
		fmt.Printf("Updated %s\n", rec.ID)

	case *deleteFlag != "":
		if err := eng.Delete(*deleteFlag); err != nil {
			fatal("Delete failed: %v", err)
		}
		fmt.Println("Deleted.")

	case *deleteAllFlag:
		if !*yesFlag {
			fatal("Refusing to delete all memories without -yes")
		}
		backup, err := eng.DeleteAll()
		if err != nil {
			fatal("Delete-all failed: %v", err)
		}
		fmt.Printf("All memories deleted. Backup: %s\n", backup)

	case *backupsFlag:
		paths, err := eng.Backups()
		if err != nil {
			fatal("Listing backups failed: %v", err)
		}
		for _, p := range paths {
			fmt.Println(p)
		}

	case *ingestFlag != "":
		text := *ingestFlag
		if text == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Reading stdin failed: %v", err)
			}
			text = string(data)
		}
		added, scrubbed, err := eng.IngestResponse(text, *modelFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		for _, rec := range added {
			fmt.Printf("Saved %s: %s\n", rec.ID, rec.Text)
		}
		if len(added) == 0 {
			fmt.Println("No memories saved.")
		}
		if scrubbed != text {
			fmt.Printf("--- scrubbed output ---\n%s\n", scrubbed)
		}

	case *injectFlag != "":
		block := eng.BuildInjection(*injectFlag)
		if block == "" {
			fmt.Println("(nothing to inject)")
		} else {
			fmt.Println(block)
		}

	case *guideFlag:
		fmt.Println(guides.Text(cfg.GuideLang))

	case *diagFlag:
		d := eng.Diagnostics()
		fmt.Printf("Total injected chars: %d\n", d.TotalChars())
		for _, e := range d.Recent() {
			fmt.Printf("%s  %d chars  [%s]\n",
				e.At.Format("15:04:05"), e.Chars, strings.Join(e.Memories, " | "))
		}

	default:
		flag.Usage()
	}
}

func printList(records []store.Record) {
	if len(records) == 0 {
		fmt.Println("No memories stored.")
		return
	}
	for _, r := range records {
		marker := " "
		if r.Always {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  (keywords: %s)\n", marker, r.ID, r.Text, strings.Join(r.Keywords, ", "))
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
