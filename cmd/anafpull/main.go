// anafpull downloads a taxpayer's monthly VAT sheet archive from the ANAF
// web service, authenticating with the SPV client certificate.
//
// Usage:
//
//	anafpull -cui 12345678 -year 2024 -month 7 -cert spv.crt -key spv.key
//
// Flags:
//
//	-cui int       Taxpayer fiscal id (required)
//	-year int      Reporting year (required)
//	-month int     Reporting month (required)
//	-cert string   Client certificate PEM file (required)
//	-key string    Client key PEM file (required)
//	-output string Archive output path (defaults to the server's file name)
//	-verbose       Debug-level logging
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Optisol-SRL/vatee/pkg/anaf"
)

func main() {
	cui := flag.Int("cui", 0, "Taxpayer fiscal id")
	year := flag.Int("year", 0, "Reporting year")
	month := flag.Int("month", 0, "Reporting month")
	certPath := flag.String("cert", "", "Client certificate PEM file")
	keyPath := flag.String("key", "", "Client key PEM file")
	outputPath := flag.String("output", "", "Archive output path")
	verbose := flag.Bool("verbose", false, "Debug-level logging")
	flag.Parse()

	_ = godotenv.Load()

	if *cui == 0 || *year == 0 || *month == 0 || *certPath == "" || *keyPath == "" {
		fmt.Println("Error: -cui, -year, -month, -cert and -key are required")
		flag.Usage()
		os.Exit(2)
	}

	log, err := buildLogger(*verbose)
	if err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cert, err := tls.LoadX509KeyPair(*certPath, *keyPath)
	if err != nil {
		log.Fatal("loading SPV certificate", zap.Error(err))
	}

	client := anaf.NewClient(cert, anaf.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resp, err := client.FetchSheet(ctx, *cui, *year, *month)
	if err != nil {
		log.Fatal("fetching VAT sheet", zap.Error(err))
	}

	switch resp.Kind {
	case anaf.ResultMaintenance:
		fmt.Println("The ANAF service is under maintenance; try again later.")
		os.Exit(2)

	case anaf.ResultErrorWithMessage:
		fmt.Printf("The service declined the request (%s): %s\n",
			errorKindLabel(resp.APIError.Kind()), resp.APIError.Message)
		os.Exit(1)

	case anaf.ResultSuccess:
		path := *outputPath
		if path == "" {
			path = resp.Archive.FileName
		}
		if path == "" {
			path = fmt.Sprintf("P300_%d_%d_%02d.zip", *cui, *year, *month)
		}
		if err := os.WriteFile(path, resp.Archive.Content, 0o644); err != nil {
			log.Fatal("writing archive", zap.Error(err))
		}
		fmt.Println("Archive written:", path)
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func errorKindLabel(k anaf.ErrorKind) string {
	switch k {
	case anaf.ErrNotFound:
		return "no sheet for this period"
	case anaf.ErrInvalidFiscalID:
		return "invalid fiscal id"
	case anaf.ErrInvalidYear:
		return "invalid year"
	case anaf.ErrYearBefore2024:
		return "years before 2024 are not available"
	case anaf.ErrInvalidMonth:
		return "invalid month"
	case anaf.ErrPeriodBefore202407:
		return "periods before July 2024 are not available"
	case anaf.ErrNoAccessToInvoices:
		return "no SPV access to any fiscal id"
	case anaf.ErrNoAccessToFiscalID:
		return "no SPV access to this fiscal id"
	case anaf.ErrTooManyRequests:
		return "daily request limit reached"
	case anaf.ErrGeneric:
		return "technical error on the service side"
	default:
		return "unknown error"
	}
}
