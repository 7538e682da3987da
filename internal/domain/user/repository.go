package user

import "shelfkeeper/internal/domain/store"

// EmailField is the unique key of the user collection.
const EmailField = "email"

type Repository = store.Collection[Account]
