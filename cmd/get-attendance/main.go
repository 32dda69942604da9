package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/config"
)

// Prints the raw attendance response for a company, optionally for a single date
func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	if len(os.Args) < 2 || os.Args[1] == "" {
		log.Fatal("No company id provided")
	}
	companyID := os.Args[1]

	conf, err := config.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	endpoints := hrapi.Endpoints{
		EmployeeBaseURL:   conf.EmployeeAPIURL(),
		AttendanceBaseURL: conf.AttendanceAPIURL(),
		CompanyBaseURL:    conf.CompanyAPIURL(),
	}

	var request hrapi.Request
	if len(os.Args) >= 3 {
		request, err = endpoints.GetAttendanceByDate(companyID, os.Args[2])
	} else {
		request, err = endpoints.ListAllAttendance(companyID)
	}
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}

	client := hrapi.NewClient(hrapi.NewHTTPClient(conf.HTTPTimeout()), hrapi.NewLimiter(conf.RequestsPerSecond()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := client.Do(ctx, request)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, response.Body, "", "  "); err != nil {
		log.Printf("Response is not valid JSON: %v", err)
		os.Stdout.Write(response.Body)
		return
	}

	fmt.Println(indented.String())
}
