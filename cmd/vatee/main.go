// vatee extracts the ANAF ledger PDFs (e-Factura invoice ledger, e-Case de
// marcat Z-report ledger) into an xlsx workbook.
//
// The input may be a bare ledger PDF or the zip archive the ANAF portal
// serves (which bundles up to one ledger of each kind). Cell positions are
// fixed per template; documents with any other layout are reported as
// unmatched, not parsed.
//
// Usage:
//
//	vatee -input P300.zip -output extras.xlsx [options]
//
// Flags:
//
//	-input string      Ledger PDF or report archive (required)
//	-output string     Output workbook path (required)
//	-templates string  YAML geometry override file
//	-debug-dir string  Write per-document debug overlay PDFs here
//	                   (defaults to $VATEE_DEBUG_PATH)
//	-verbose           Debug-level logging
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Optisol-SRL/vatee/pkg/inspect"
	"github.com/Optisol-SRL/vatee/pkg/layout"
	"github.com/Optisol-SRL/vatee/pkg/report"
	"github.com/Optisol-SRL/vatee/pkg/vatee"
)

func main() {
	inputPath := flag.String("input", "", "Ledger PDF or report archive")
	outputPath := flag.String("output", "", "Output workbook path")
	templatesPath := flag.String("templates", "", "YAML geometry override file")
	debugDir := flag.String("debug-dir", "", "Directory for debug overlay PDFs")
	verbose := flag.Bool("verbose", false, "Debug-level logging")
	flag.Parse()

	// Local .env is optional; flags and the environment win.
	_ = godotenv.Load()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Error: -input and -output are required")
		flag.Usage()
		os.Exit(2)
	}

	log, err := buildLogger(*verbose)
	if err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *debugDir == "" {
		*debugDir = os.Getenv("VATEE_DEBUG_PATH")
	}

	templates := layout.Defaults()
	if *templatesPath != "" {
		templates, err = layout.LoadOverrides(*templatesPath)
		if err != nil {
			log.Fatal("loading template overrides", zap.Error(err))
		}
	}

	ins := inspect.Inspect(*inputPath, log)
	if ins.Type != inspect.Success {
		fmt.Println(inspectionMessage(ins.Type))
		os.Exit(1)
	}

	group, err := vatee.ExtractGroup(ins, vatee.Options{
		Logger:    log,
		Templates: templates,
		DebugDir:  *debugDir,
	})
	if err != nil {
		log.Fatal("extraction failed", zap.Error(err))
	}

	if group.Invoice != nil {
		fmt.Printf("Invoice ledger: %s (%d invoices)\n",
			group.Invoice.Status, len(group.Invoice.Invoices))
	}
	if group.CashRegister != nil {
		fmt.Printf("Cash-register ledger: %s (%d Z reports)\n",
			group.CashRegister.Status, len(group.CashRegister.Reports))
	}

	if group.Empty() {
		fmt.Println("No extractable entries found; nothing to write.")
		os.Exit(1)
	}

	workbook, err := report.Build(group.Output())
	if err != nil {
		log.Fatal("rendering workbook", zap.Error(err))
	}
	if err := os.WriteFile(*outputPath, workbook, 0o644); err != nil {
		log.Fatal("writing workbook", zap.Error(err))
	}
	fmt.Println("Workbook written:", *outputPath)
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func inspectionMessage(t inspect.ResultType) string {
	switch t {
	case inspect.ErrorReadFile:
		return "Could not read the input file."
	case inspect.ErrorUnknownType:
		return "Unsupported input type; expected a .pdf or .zip file."
	case inspect.ErrorArchiveNoFiles:
		return "The archive contains no recognizable ledger PDFs."
	case inspect.ErrorArchiveTooManyFiles:
		return "The archive contains more than one ledger PDF of the same kind."
	case inspect.ErrorPdfUnknownTemplate:
		return "The PDF does not match any known ledger layout."
	default:
		return "Could not inspect the input file."
	}
}
