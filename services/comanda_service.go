package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Galdes/pdv-sorv-sub000/models"
)

// ComandaService e a porta de admissao das mesas: no maximo UMA comanda
// aberta por mesa. A checagem e refeita dentro da transacao de abertura,
// segurando lock na linha da mesa, para fechar a janela de corrida de dois
// clientes escaneando o mesmo QR ao mesmo tempo.
type ComandaService struct {
	db *gorm.DB
}

func NewComandaService(db *gorm.DB) *ComandaService {
	return &ComandaService{db: db}
}

// PodeAbrirComanda e a checagem barata usada pela UI ("mesa ocupada").
// NAO substitui a rechecagem transacional de AbrirComanda.
func (s *ComandaService) PodeAbrirComanda(mesaID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Comanda{}).
		Where("mesa_id = ? AND status = ?", mesaID, models.ComandaAberta).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// AbrirComanda localiza/cria o cliente pelo telefone e abre a comanda.
// Tudo em uma transacao: lock na mesa, rechecagem de ocupacao, insert.
// Perder a corrida devolve ErrMesaOcupada e nenhum efeito colateral.
func (s *ComandaService) AbrirComanda(mesaID uint, telefone, nome string) (*models.Comanda, error) {
	if telefone == "" {
		return nil, fmt.Errorf("telefone e obrigatorio")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var mesa models.Mesa
	if err := comLock(tx).First(&mesa, mesaID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("mesa %d nao encontrada", mesaID)
	}
	if !mesa.Ativa {
		tx.Rollback()
		return nil, ErrMesaInativa
	}

	// Rechecagem dentro do lock: dois scans simultaneos chegam aqui em
	// serie e o segundo enxerga a comanda do primeiro.
	var abertas int64
	if err := tx.Model(&models.Comanda{}).
		Where("mesa_id = ? AND status = ?", mesaID, models.ComandaAberta).
		Count(&abertas).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if abertas > 0 {
		tx.Rollback()
		return nil, ErrMesaOcupada
	}

	cliente, err := findOrCreateCliente(tx, telefone, nome)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	comanda := models.Comanda{
		MesaID:    mesaID,
		ClienteID: cliente.ID,
		Status:    models.ComandaAberta,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.Create(&comanda).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	comanda.Cliente = *cliente
	comanda.Mesa = mesa
	return &comanda, nil
}

// FecharComanda marca a comanda como fechada (cliente foi embora sem quitar
// tudo; o saldo continua no universo de acerto da mesa).
func (s *ComandaService) FecharComanda(comandaID uint) (*models.Comanda, error) {
	var comanda models.Comanda
	if err := s.db.First(&comanda, comandaID).Error; err != nil {
		return nil, fmt.Errorf("comanda %d nao encontrada", comandaID)
	}
	if comanda.Status != models.ComandaAberta {
		return nil, ErrComandaFechada
	}
	comanda.Status = models.ComandaFechada
	comanda.UpdatedAt = time.Now()
	if err := s.db.Save(&comanda).Error; err != nil {
		return nil, err
	}
	return &comanda, nil
}

// FindOrCreateCliente fora de transacao, para uso do back-office.
func (s *ComandaService) FindOrCreateCliente(telefone, nome string) (*models.Cliente, error) {
	return findOrCreateCliente(s.db, telefone, nome)
}

func findOrCreateCliente(tx *gorm.DB, telefone, nome string) (*models.Cliente, error) {
	var cliente models.Cliente
	err := tx.Where("telefone = ?", telefone).First(&cliente).Error
	if err == nil {
		// Atualiza o nome se o cliente informou um desta vez
		if nome != "" && cliente.Nome != nome {
			cliente.Nome = nome
			if err := tx.Save(&cliente).Error; err != nil {
				return nil, err
			}
		}
		return &cliente, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cliente = models.Cliente{
		Telefone:  telefone,
		Nome:      nome,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.Create(&cliente).Error; err != nil {
		return nil, err
	}
	return &cliente, nil
}
