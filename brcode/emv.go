package brcode

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EMV tag constants, in the order they are emitted.
const (
	tagPayloadFormat   = "00"
	tagMerchantAccount = "26"
	tagCategoryCode    = "52"
	tagCurrency        = "53"
	tagAmount          = "54"
	tagCountry         = "58"
	tagMerchantName    = "59"
	tagMerchantCity    = "60"
	tagAdditionalData  = "62"
	tagCRC             = "63"
)

// Sub-tags of the composite fields.
const (
	subTagGUI         = "00"
	subTagKey         = "01"
	subTagDescription = "02"
	subTagTxID        = "05"
)

// pixGUI is the globally unique identifier of the PIX arrangement.
const pixGUI = "br.gov.bcb.pix"

// Fallbacks for merchant fields that end up empty after normalization.
const (
	fallbackName = "PAGAMENTO"
	fallbackCity = "BRASIL"
)

// Merchant holds the receiving side of every charge: the PIX key and the
// normalized display name and city.
type Merchant struct {
	Key  Key
	Name string // uppercase, accent-free, at most 25 chars
	City string // same rules, at most 15 chars
}

// NewMerchant classifies the key and normalizes the name and city.
func NewMerchant(rawKey, name, city string) Merchant {
	return Merchant{
		Key:  ClassifyKey(rawKey),
		Name: NormalizeText(name, 25),
		City: NormalizeText(city, 15),
	}
}

// Charge describes a single payment to encode. The zero value of Amount
// means "no amount": the code stays static and the payer types the value.
type Charge struct {
	Amount      decimal.Decimal
	Description string
	TxID        string
	KeyOverride string // optional raw key replacing the merchant's
}

// Encoder produces BR Code payloads for one merchant. It holds no mutable
// state and is safe for concurrent use.
type Encoder struct {
	merchant Merchant
}

// NewEncoder returns an Encoder for the given merchant.
func NewEncoder(m Merchant) *Encoder {
	return &Encoder{merchant: m}
}

// Merchant returns the merchant this encoder was built with.
func (e *Encoder) Merchant() Merchant {
	return e.merchant
}

// field serializes one TLV field: 2-digit tag, zero-padded 2-digit length,
// then the value. Values longer than 99 characters cannot be represented.
func field(tag, value string) (string, error) {
	if len(value) > 99 {
		return "", fmt.Errorf("%w: tag %s value is %d chars", ErrFieldTooLong, tag, len(value))
	}
	return fmt.Sprintf("%s%02d%s", tag, len(value), value), nil
}

// merchantAccountInfo builds the tag 26 composite: the PIX GUI, the
// normalized key, and the description when one survives normalization.
func (e *Encoder) merchantAccountInfo(c Charge) (string, error) {
	key := e.merchant.Key
	if c.KeyOverride != "" {
		key = ClassifyKey(c.KeyOverride)
	}

	gui, err := field(subTagGUI, pixGUI)
	if err != nil {
		return "", err
	}
	k, err := field(subTagKey, key.Value)
	if err != nil {
		return "", err
	}
	content := gui + k

	if desc := NormalizeText(c.Description, 25); desc != "" {
		d, err := field(subTagDescription, desc)
		if err != nil {
			return "", err
		}
		content += d
	}

	return field(tagMerchantAccount, content)
}

// additionalData builds the tag 62 composite carrying the transaction id.
func additionalData(c Charge) (string, error) {
	txid, err := field(subTagTxID, NormalizeTxID(c.TxID))
	if err != nil {
		return "", err
	}
	return field(tagAdditionalData, txid)
}

// Encode assembles the full BR Code payload for a charge.
//
// Fields are emitted in the fixed order 00, 26, 52, 53, 54, 58, 59, 60,
// 62, 63. The amount field (54) is omitted when the amount is zero; a
// negative amount is rejected with ErrInvalidAmount. The
// point-of-initiation field (tag 01) is never emitted: several wallet
// apps reject the dynamic indicator from non-PSP codes, so leaving it out
// keeps the code scannable everywhere.
func (e *Encoder) Encode(c Charge) (string, error) {
	if c.Amount.IsNegative() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, c.Amount)
	}

	var b strings.Builder
	add := func(f string, err error) error {
		if err != nil {
			return err
		}
		b.WriteString(f)
		return nil
	}

	if err := add(field(tagPayloadFormat, "01")); err != nil {
		return "", err
	}
	if err := add(e.merchantAccountInfo(c)); err != nil {
		return "", err
	}
	if err := add(field(tagCategoryCode, "0000")); err != nil {
		return "", err
	}
	if err := add(field(tagCurrency, "986")); err != nil {
		return "", err
	}
	if c.Amount.IsPositive() {
		if err := add(field(tagAmount, c.Amount.StringFixed(2))); err != nil {
			return "", err
		}
	}
	if err := add(field(tagCountry, "BR")); err != nil {
		return "", err
	}

	name := e.merchant.Name
	if name == "" {
		name = fallbackName
	}
	if err := add(field(tagMerchantName, name)); err != nil {
		return "", err
	}

	city := e.merchant.City
	if city == "" {
		city = fallbackCity
	}
	if err := add(field(tagMerchantCity, city)); err != nil {
		return "", err
	}

	if err := add(additionalData(c)); err != nil {
		return "", err
	}

	// The CRC is computed with its own tag and length already appended,
	// and its value closes the payload.
	b.WriteString(tagCRC + "04")
	payload := b.String()
	return payload + checksum(payload), nil
}
