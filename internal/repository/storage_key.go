package repository

// storageKeyPrefix namespaces persisted carts, one key per owner.
const storageKeyPrefix = "tarzi:cart:"

func StorageKey(ownerID string) string {
	return storageKeyPrefix + ownerID
}
