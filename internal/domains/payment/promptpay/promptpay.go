// Package promptpay builds EMVCo merchant-presented QR payloads for
// Thai PromptPay transfers.
package promptpay

import (
	"fmt"
	"strings"
)

const (
	idPayloadFormat   = "00"
	idPointOfInit     = "01"
	idMerchantAccount = "29"
	idCurrency        = "53"
	idAmount          = "54"
	idCountry         = "58"
	idCRC             = "63"

	subIDApplication = "00"
	subIDPhone       = "01"
	subIDNationalID  = "02"
	subIDEWallet     = "03"

	payloadFormatEMV = "01"
	pointOfInitOnce  = "12"
	applicationID    = "A000000677010111"
	currencyTHB      = "764"
	countryTH        = "TH"
)

// Payload builds the full QR payload for the given PromptPay ID
// (phone number, national ID or e-wallet ID) and amount in baht. A
// zero amount yields an open-amount QR.
func Payload(promptPayID string, amount float64) (string, error) {
	target, subID, err := normalizeTarget(promptPayID)
	if err != nil {
		return "", err
	}

	merchant := tlv(subIDApplication, applicationID) + tlv(subID, target)

	var b strings.Builder

	b.WriteString(tlv(idPayloadFormat, payloadFormatEMV))
	b.WriteString(tlv(idPointOfInit, pointOfInitOnce))
	b.WriteString(tlv(idMerchantAccount, merchant))
	b.WriteString(tlv(idCurrency, currencyTHB))

	if amount > 0 {
		b.WriteString(tlv(idAmount, fmt.Sprintf("%.2f", amount)))
	}

	b.WriteString(tlv(idCountry, countryTH))

	// The CRC covers everything up to and including its own tag and
	// length.
	payload := b.String() + idCRC + "04"

	return fmt.Sprintf("%s%04X", payload, Checksum([]byte(payload))), nil
}

// normalizeTarget maps a raw PromptPay ID onto the wire form: phone
// numbers become 0066-prefixed without the leading zero, national IDs
// and e-wallet IDs pass through digits only.
func normalizeTarget(id string) (target, subID string, err error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, id)

	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return "0066" + digits[1:], subIDPhone, nil
	case len(digits) == 13:
		return digits, subIDNationalID, nil
	case len(digits) == 15:
		return digits, subIDEWallet, nil
	default:
		return "", "", fmt.Errorf("unrecognized promptpay id %q", id)
	}
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// Checksum is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as
// required by the EMVCo QR specification.
func Checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)

	for _, b := range data {
		crc ^= uint16(b) << 8

		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
