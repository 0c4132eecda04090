// package formatter provides functions to render receipts, validation outcomes, and session state (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/adx/internal/models"
)

// ReceiptToText converts an AdReceipt to plain text format
func ReceiptToText(receipt *models.AdReceipt) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Ad ID: %s\n", receipt.AdID))
	buf.WriteString(fmt.Sprintf("Status: %s\n", receipt.Status))
	if receipt.EstimatedReviewTime != "" {
		buf.WriteString(fmt.Sprintf("Estimated review time: %s\n", receipt.EstimatedReviewTime))
	}

	return buf.Bytes()
}

// ReceiptToMarkdown converts an AdReceipt to Markdown format
func ReceiptToMarkdown(receipt *models.AdReceipt) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Ad Submitted\n\n")
	buf.WriteString(fmt.Sprintf("**Ad ID**: %s\n", receipt.AdID))
	buf.WriteString(fmt.Sprintf("**Status**: %s\n", receipt.Status))
	if receipt.EstimatedReviewTime != "" {
		buf.WriteString(fmt.Sprintf("**Estimated review time**: %s\n", receipt.EstimatedReviewTime))
	}

	return buf.Bytes()
}

// OutcomeToCSV converts a ValidationOutcome to CSV format with columns: Field, Rule, Message
func OutcomeToCSV(outcome models.ValidationOutcome) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Field", "Rule", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range outcome {
		record := []string{v.Field, string(v.Rule), v.Message}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// OutcomeToText converts a ValidationOutcome to plain text format
func OutcomeToText(outcome models.ValidationOutcome) []byte {
	var buf bytes.Buffer

	if outcome.Valid() {
		buf.WriteString("Draft is valid.\n")
		return buf.Bytes()
	}

	buf.WriteString(fmt.Sprintf("Violations: %d\n\n", len(outcome)))
	for i, v := range outcome {
		buf.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, v.Field, v.Message))
	}

	return buf.Bytes()
}

// SessionToText converts a TokenState and validity check result to plain text format
func SessionToText(state models.TokenState, validity models.TokenValidity) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Session: %s\n", state.Phase))
	buf.WriteString(fmt.Sprintf("Token: %s\n", validity))

	if state.ExpiresAt > 0 {
		expiry := time.UnixMilli(state.ExpiresAt)
		buf.WriteString(fmt.Sprintf("Expires: %s\n", expiry.Format(time.RFC1123)))
	}

	return buf.Bytes()
}

// ReceiptExportResult contains the paths of files created by WriteReceiptExport
type ReceiptExportResult struct {
	ReceiptFile  string
	MarkdownFile string
}

// WriteReceiptExport exports an ad receipt to JSON with an accompanying Markdown summary.
//
// Defaults to the ad ID as the base filename & creates {base}_receipt.json and {base}_receipt.md
func WriteReceiptExport(receipt *models.AdReceipt, baseFilepath string) (*ReceiptExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = receipt.AdID
	}

	receiptJSON, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt JSON: %w", err)
	}

	receiptFile := baseFilepath + "_receipt.json"
	if err := os.WriteFile(receiptFile, receiptJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write receipt file: %w", err)
	}

	markdownFile := baseFilepath + "_receipt.md"
	if err := os.WriteFile(markdownFile, ReceiptToMarkdown(receipt), 0644); err != nil {
		return nil, fmt.Errorf("failed to write markdown file: %w", err)
	}

	return &ReceiptExportResult{
		ReceiptFile:  receiptFile,
		MarkdownFile: markdownFile,
	}, nil
}
