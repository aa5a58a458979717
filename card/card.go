package card

import (
	"fmt"
	"strings"
)

// Card is a card identity.
//
// Encoding:
// - high 4 bits: suit (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - low 4 bits: rank (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K)
type Card byte

func (c Card) String() string {
	if c == CardRear {
		return "Rear"
	}
	if !c.Valid() {
		return "Invalid"
	}

	rankStr := ""
	switch c.Rank() {
	case RankAce:
		rankStr = "A"
	case 10:
		rankStr = "T"
	case RankJack:
		rankStr = "J"
	case RankQueen:
		rankStr = "Q"
	case RankKing:
		rankStr = "K"
	default:
		rankStr = fmt.Sprintf("%d", c.Rank())
	}
	return rankStr + c.Suit().Letter()
}

// Valid reports whether c encodes one of the 52 standard identities.
func (c Card) Valid() bool {
	r := byte(c & 0x0F)
	return c>>4 <= Card(Diamond) && r >= RankAce && r <= RankKing
}

// Rank returns 1-13 (A=1, K=13), 0 for invalid cards.
func (c Card) Rank() byte {
	if !c.Valid() {
		return 0
	}
	return byte(c & 0x0F)
}

func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool   { return c.Rank() == RankAce }
func (c Card) IsJack() bool  { return c.Rank() == RankJack }
func (c Card) IsQueen() bool { return c.Rank() == RankQueen }
func (c Card) IsKing() bool  { return c.Rank() == RankKing }

// IsFace reports J, Q or K.
func (c Card) IsFace() bool { return c.Rank() >= RankJack }

// Value is the blackjack base value: Ace=1, number cards face value, J/Q/K=10.
func (c Card) Value() int {
	r := int(c.Rank())
	if r > 10 {
		return 10
	}
	return r
}

// RankLetter returns the rank part of String ("A", "2".."9", "T", "J", "Q", "K").
func (c Card) RankLetter() string {
	s := c.String()
	if len(s) < 2 {
		return ""
	}
	return s[:len(s)-1]
}

// Parse converts strings such as "As", "Td", "10h" or "KC" into a Card.
func Parse(cardStr string) (Card, error) {
	cardStr = strings.TrimSpace(cardStr)
	if len(cardStr) < 2 {
		return CardInvalid, fmt.Errorf("invalid card string: %q", cardStr)
	}

	var suit Suit
	switch cardStr[len(cardStr)-1] {
	case 's', 'S':
		suit = Spade
	case 'h', 'H':
		suit = Heart
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	default:
		return CardInvalid, fmt.Errorf("invalid suit: %c", cardStr[len(cardStr)-1])
	}

	rank, err := ParseRank(cardStr[:len(cardStr)-1])
	if err != nil {
		return CardInvalid, err
	}
	return New(suit, rank), nil
}

// ParseRank parses a rank token ("A", "2".."10", "T", "J", "Q", "K").
func ParseRank(s string) (byte, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return RankAce, nil
	case "2":
		return 2, nil
	case "3":
		return 3, nil
	case "4":
		return 4, nil
	case "5":
		return 5, nil
	case "6":
		return 6, nil
	case "7":
		return 7, nil
	case "8":
		return 8, nil
	case "9":
		return 9, nil
	case "T", "10":
		return 10, nil
	case "J":
		return RankJack, nil
	case "Q":
		return RankQueen, nil
	case "K":
		return RankKing, nil
	}
	return 0, fmt.Errorf("invalid rank: %s", s)
}

// New builds a Card from suit and rank. Out-of-range input yields CardInvalid.
func New(suit Suit, rank byte) Card {
	if suit > Diamond || rank < RankAce || rank > RankKing {
		return CardInvalid
	}
	return Card(byte(suit)<<4 | rank)
}
