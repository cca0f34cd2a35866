package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"carnes-boutique/models"
	"carnes-boutique/pricing"
	"carnes-boutique/reconciliation"
	"carnes-boutique/service"
)

func main() {
	pdfFile := flag.String("pdf", "", "Path to a price-list PDF")
	textFile := flag.String("text", "", "Path to a price list as plain text")
	region := flag.String("region", "", "Only print items priced in this region (e.g. regionA)")
	configFile := flag.String("config", "", "Path to a pricing config JSON (defaults built in)")
	weightsFile := flag.String("weights", "", "Path to a distributor weight report to reconcile against the list (requires -region)")
	flag.Parse()

	if (*pdfFile == "") == (*textFile == "") {
		fmt.Println("Error: exactly one of -pdf or -text is required.")
		flag.Usage()
		os.Exit(1)
	}
	if *weightsFile != "" && *region == "" {
		fmt.Println("Error: -weights requires -region.")
		flag.Usage()
		os.Exit(1)
	}

	engine, err := pricing.LoadEngine(*configFile)
	if err != nil {
		log.Fatalf("Failed to load pricing config: %v", err)
	}
	if *region != "" && !engine.HasRegion(*region) {
		log.Fatalf("Unknown region %q, configured regions: %v", *region, engine.Regions())
	}

	// Preview needs neither storage nor Drive
	importer := service.NewCatalogImportService(nil, service.NewPDFReader(), nil, nil)
	ctx := context.Background()

	var items []models.CatalogItem
	if *pdfFile != "" {
		data, err := os.ReadFile(*pdfFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *pdfFile, err)
		}
		items, err = importer.PreviewPDF(ctx, data)
		if err != nil {
			log.Fatalf("Failed to parse price list: %v", err)
		}
	} else {
		data, err := os.ReadFile(*textFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *textFile, err)
		}
		items, _ = importer.Preview(ctx, string(data))
	}

	var output interface{} = items
	switch {
	case *weightsFile != "":
		data, err := os.ReadFile(*weightsFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *weightsFile, err)
		}
		reports, err := reconciliation.ParseWeightReports(string(data))
		if err != nil {
			log.Fatalf("Failed to read weight report: %v", err)
		}
		order, err := reconciliation.RecalculateOrder(items, *region, reports)
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
		output = models.RecalculateResponse{Order: order, Message: reconciliation.FormatRecalculationMessage(order)}
	case *region != "":
		output = filterRegion(items, *region)
	}

	out, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON output: %v", err)
	}
	fmt.Println(string(out))
}

func filterRegion(items []models.CatalogItem, region string) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if _, ok := item.RegionalPrice.Price(region); ok {
			out = append(out, item)
		}
	}
	return out
}
