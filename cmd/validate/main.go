// Package main provides a CLI tool for validating finance tracker endpoints.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type endpoint struct {
	path        string
	method      string
	contentType string
	contains    []string
}

var endpoints = []endpoint{
	// Transactions
	{path: "/api/transactions", method: "GET", contentType: "application/json", contains: []string{`"transactions"`}},
	{path: "/api/transactions/months", method: "GET", contentType: "application/json", contains: []string{`"months"`}},

	// Dashboard
	{path: "/api/dashboard/summary", method: "GET", contentType: "application/json", contains: []string{`"totals"`, `"balance"`}},
	{path: "/api/dashboard/charts/data/pie", method: "GET", contentType: "application/json", contains: []string{`"pie"`}},
	{path: "/api/dashboard/charts/data/daily", method: "GET", contentType: "application/json", contains: []string{`"line"`}},
	{path: "/api/dashboard/charts/data/category", method: "GET", contentType: "application/json", contains: []string{`"bar"`}},

	// Settings
	{path: "/api/settings", method: "GET", contentType: "application/json", contains: []string{`"currency"`}},

	// Export
	{path: "/api/export/csv", method: "GET", contentType: "text/csv", contains: []string{"Date,Type,Category"}},

	// Health
	{path: "/api/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 10, "Request timeout in seconds")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	fmt.Printf("Validating server at %s\n", *url)
	fmt.Printf("Testing %d endpoints...\n\n", len(endpoints))

	var passed, failed int
	var results []result

	for _, ep := range endpoints {
		res := check(client, *url, ep)
		results = append(results, res)

		if res.err != nil {
			failed++
			fmt.Printf("FAIL %-50s %v\n", ep.path, res.err)
			continue
		}
		passed++
		if *verbose {
			fmt.Printf("ok   %-50s %d (%v)\n", ep.path, res.status, res.duration.Round(time.Millisecond))
		}
	}

	fmt.Printf("\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func check(client *http.Client, base string, ep endpoint) result {
	start := time.Now()

	req, err := http.NewRequest(ep.method, base+ep.path, nil)
	if err != nil {
		return result{endpoint: ep, err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return result{endpoint: ep, err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	res := result{
		endpoint: ep,
		status:   resp.StatusCode,
		duration: time.Since(start),
		body:     string(body),
	}

	if resp.StatusCode != http.StatusOK {
		res.err = fmt.Errorf("status %d", resp.StatusCode)
		return res
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, ep.contentType) {
		res.err = fmt.Errorf("content type %q, want %q", ct, ep.contentType)
		return res
	}

	for _, want := range ep.contains {
		if !strings.Contains(res.body, want) {
			res.err = fmt.Errorf("body missing %q", want)
			return res
		}
	}

	return res
}
