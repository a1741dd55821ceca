package models

// User is a registered account. CoinBalance is materialized from the
// transaction ledger for fast reads and must stay consistent with it.
type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	CoinBalance  int    `json:"coinBalance" db:"coin_balance"`
}

// Public returns the representation exposed by the auth endpoints.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, CoinBalance: u.CoinBalance}
}

// PublicUser is the wire shape of a user.
type PublicUser struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	CoinBalance int    `json:"coinBalance"`
}
