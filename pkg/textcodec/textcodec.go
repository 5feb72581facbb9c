// Package textcodec converts text to a bit sequence and back, eight bits per
// character, most significant bit first. The character set is ISO-8859-1.
package textcodec

import (
	"errors"
	"fmt"

	"BERSim/pkg/modem"

	"golang.org/x/text/encoding/charmap"
)

// CharWidth is the number of bits per character.
const CharWidth = 8

// Placeholder is what Display shows for bits that cannot be rendered.
const Placeholder = "[undecodable: too many errors]"

var ErrUnsupportedChar = errors.New("character outside ISO-8859-1")

func TextToBits(text string) (modem.Bits, error) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedChar, err)
	}

	bits := make(modem.Bits, 0, len(encoded)*CharWidth)
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		for j := CharWidth - 1; j >= 0; j-- {
			bits = append(bits, (c>>j)&1)
		}
	}
	return bits, nil
}

func BitsToText(bits modem.Bits) (string, error) {
	if len(bits)%CharWidth != 0 {
		return "", fmt.Errorf("%w: %d bits is not a multiple of %d", modem.ErrInvalidLength, len(bits), CharWidth)
	}
	if err := modem.Validate(bits); err != nil {
		return "", err
	}

	raw := make([]byte, len(bits)/CharWidth)
	for i := range raw {
		var c byte
		for _, bit := range bits[i*CharWidth : (i+1)*CharWidth] {
			c = c<<1 | bit
		}
		raw[i] = c
	}

	text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// Display renders bits as text for humans, cut to limit characters followed by
// "...". Bits that do not form text yield Placeholder.
func Display(bits modem.Bits, limit int) string {
	text, err := BitsToText(bits)
	if err != nil {
		return Placeholder
	}
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
