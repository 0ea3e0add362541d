package contextkeys

// contextKey is a private type so context values cannot collide with keys
// from other packages.
type contextKey string

// DBContextKey stores the request-scoped *gorm.DB (pool or transaction).
const DBContextKey = contextKey("db")
