// Package chatbotservice answers influencer questions from an FAQ knowledge base,
// falling back to a Gemini model with campaign context when one is configured.
package chatbotservice
