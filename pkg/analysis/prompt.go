package analysis

import (
	"billora-backend/domain"
	"fmt"
	"strconv"
	"strings"
)

const (
	analysisMaxTokens = 500
	suggestMaxTokens  = 200
	promptTemperature = 0.7

	suggestSystemPrompt = "You are an AI assistant specialized in invoice analysis and business intelligence. Be concise and professional in your responses."
)

func itemsText(data domain.InvoiceData) string {
	parts := make([]string, 0, len(data.Items))
	for _, item := range data.Items {
		parts = append(parts, fmt.Sprintf("%s (%sx)", item.Name, formatNumber(item.Quantity)))
	}
	return strings.Join(parts, ", ")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func description(data domain.InvoiceData) string {
	if data.Description != "" {
		return data.Description
	}
	return data.Note
}

// buildAnalysisPrompt asks for a JSON object so ParseAnalysis can take its first strategy.
func buildAnalysisPrompt(data domain.InvoiceData) string {
	return fmt.Sprintf(`Analyze this invoice and provide:
1. A brief summary (max 100 characters)
2. Suggested tags (comma-separated, max 5 tags)
3. Classification (one of: Food & Beverage, Electronics, Services, Clothing, Software, Hardware, General)

Invoice details:
- Customer: %s
- Items: %s
- Total: $%s
- Description: %s

Format response as JSON:
{
  "summary": "brief summary here",
  "suggested_tags": ["tag1", "tag2", "tag3"],
  "classification": "category",
  "confidence": 0.85
}`, data.CustomerName, itemsText(data), formatNumber(data.Total), description(data))
}

func buildSuggestPrompt(data domain.InvoiceData, intent string) string {
	customer := data.CustomerName
	if customer == "" {
		customer = "Unknown"
	}

	prompt := fmt.Sprintf(`Analyze this invoice and suggest relevant tags for categorization.

Invoice details:
- Customer: %s
- Items: %s
- Total: $%s
- Description: %s

Please suggest 3-5 relevant tags separated by commas. Return only the tags, no additional text.
Example format: tag1, tag2, tag3, tag4`, customer, itemsText(data), formatNumber(data.Total), description(data))

	if intent != "" {
		prompt += fmt.Sprintf("\n\nUser request: %s\nProvide relevant analysis and suggestions.", intent)
	}
	return prompt
}
