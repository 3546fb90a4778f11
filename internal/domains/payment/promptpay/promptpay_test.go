package promptpay_test

import (
	"fmt"
	"strings"
	"testing"

	"sparkle/internal/domains/payment/promptpay"
)

func TestChecksum(t *testing.T) {
	// Standard CRC-16/CCITT-FALSE check vector.
	if got := promptpay.Checksum([]byte("123456789")); got != 0x29B1 {
		t.Errorf("expected 0x29B1, got 0x%04X", got)
	}
}

func TestPayload(t *testing.T) {
	tests := []struct {
		name        string
		promptPayID string
		amount      float64
		wantTarget  string
		wantAmount  string
		wantErr     bool
	}{
		{
			name:        "phone number",
			promptPayID: "0812345678",
			amount:      1500,
			wantTarget:  "01130066812345678",
			wantAmount:  "54071500.00",
		},
		{
			name:        "formatted phone number",
			promptPayID: "081-234-5678",
			amount:      100.5,
			wantTarget:  "01130066812345678",
			wantAmount:  "5406100.50",
		},
		{
			name:        "national id",
			promptPayID: "1234567890123",
			amount:      250,
			wantTarget:  "02131234567890123",
			wantAmount:  "5406250.00",
		},
		{
			name:        "e-wallet id",
			promptPayID: "123456789012345",
			amount:      99,
			wantTarget:  "0315123456789012345",
			wantAmount:  "540599.00",
		},
		{
			name:        "zero amount yields open QR",
			promptPayID: "0812345678",
			amount:      0,
			wantTarget:  "01130066812345678",
		},
		{
			name:        "unrecognized id",
			promptPayID: "12345",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := promptpay.Payload(tt.promptPayID, tt.amount)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.HasPrefix(payload, "000201") {
				t.Errorf("payload must start with the EMV format indicator, got %q", payload)
			}

			if !strings.Contains(payload, "0016A000000677010111") {
				t.Errorf("payload missing the PromptPay application id: %q", payload)
			}

			if !strings.Contains(payload, tt.wantTarget) {
				t.Errorf("payload missing target %q: %q", tt.wantTarget, payload)
			}

			if tt.wantAmount == "" {
				if strings.Contains(payload, "54") && tt.amount == 0 && strings.Contains(payload, "5407") {
					t.Errorf("open QR must not carry an amount field: %q", payload)
				}
			} else if !strings.Contains(payload, tt.wantAmount) {
				t.Errorf("payload missing amount %q: %q", tt.wantAmount, payload)
			}

			if !strings.Contains(payload, "5802TH") || !strings.Contains(payload, "5303764") {
				t.Errorf("payload missing country or currency: %q", payload)
			}

			// The final four characters are the CRC over everything
			// before them.
			body, crc := payload[:len(payload)-4], payload[len(payload)-4:]
			if want := fmt.Sprintf("%04X", promptpay.Checksum([]byte(body))); crc != want {
				t.Errorf("expected CRC %s, got %s", want, crc)
			}
		})
	}
}
