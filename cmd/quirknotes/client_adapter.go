package main

import (
	"context"
	"time"

	"quirknotes/internal/app"
	notesclient "quirknotes/internal/client"
)

type clientFactory func(baseURL string, timeout time.Duration) (commandClient, error)

type commandClient interface {
	app.NotesAPI
	BaseURL() string
	Health(ctx context.Context) (*notesclient.HealthResponse, error)
}

func newNotesClient(baseURL string, timeout time.Duration) (commandClient, error) {
	client, err := notesclient.New(baseURL, notesclient.WithTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return client, nil
}
