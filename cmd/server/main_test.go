package main

import (
	"testing"

	"github.com/obi/gowallet/internal/infrastructure/config"
)

func TestParseLimits(t *testing.T) {
	cfg := &config.Config{
		MinDeposit:    "100",
		MaxDeposit:    "5000000",
		MinWithdrawal: "100",
	}

	limits, err := parseLimits(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if limits.MinDeposit.String() != "100" {
		t.Errorf("expected min deposit 100, got %s", limits.MinDeposit)
	}
	if limits.MaxDeposit.String() != "5000000" {
		t.Errorf("expected max deposit 5000000, got %s", limits.MaxDeposit)
	}
}

func TestParseLimitsInvalidAmount(t *testing.T) {
	cfg := &config.Config{
		MinDeposit:    "not-a-number",
		MaxDeposit:    "5000000",
		MinWithdrawal: "100",
	}

	if _, err := parseLimits(cfg); err == nil {
		t.Fatal("expected error for invalid amount")
	}
}

func TestParseLimitsMaxBelowMin(t *testing.T) {
	cfg := &config.Config{
		MinDeposit:    "1000",
		MaxDeposit:    "500",
		MinWithdrawal: "100",
	}

	if _, err := parseLimits(cfg); err == nil {
		t.Fatal("expected error when max deposit is below min deposit")
	}
}
