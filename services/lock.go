package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// comLock aplica SELECT ... FOR UPDATE quando o banco suporta. O SQLite dos
// testes nao aceita a clausula, mas serializa escritas no arquivo inteiro,
// o que preserva a mesma garantia de exclusao por mesa.
func comLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
