package entity

// OnCardCreated records a new card in the deck.
func (d *FlashcardDeck) OnCardCreated() {
	d.TotalCards++
}

// OnCardDeleted records a removed card. The counter is clamped at zero so earlier drift heals silently.
func (d *FlashcardDeck) OnCardDeleted() {
	if d.TotalCards > 0 {
		d.TotalCards--
		return
	}
	d.TotalCards = 0
}
