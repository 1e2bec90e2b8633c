package services

import "errors"

// Error taxonomy mesin order/payment. Controller memetakan error ini ke
// HTTP status code; pesan ke user ditulis di layer HTTP, bukan di sini.
var (
	// ErrInvalidInput -> field wajib hilang / nilai tidak masuk akal.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound -> order, payment, atau item katalog tidak ada.
	ErrNotFound = errors.New("not found")
	// ErrForbidden -> actor bukan pemilik order.
	ErrForbidden = errors.New("forbidden")
	// ErrIllegalTransition -> edge tidak ada untuk status sekarang,
	// termasuk status yang sudah terminal.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrExpired -> aksi dilakukan setelah deadline pembayaran.
	ErrExpired = errors.New("payment window expired")
	// ErrConflict -> kalah race dengan transisi konkuren.
	ErrConflict = errors.New("conflicting concurrent update")
)
