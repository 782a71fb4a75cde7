package mapping

import (
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/models"
)

// ToDomainGuideTransaction converts a model GuideTransaction to a domain GuideTransaction
func ToDomainGuideTransaction(m models.GuideTransaction) domain.GuideTransaction {
	return domain.GuideTransaction{
		TransactionID:  m.TransactionID,
		GuideID:        m.GuideID,
		Amount:         m.Amount,
		Type:           domain.GuideTransactionType(m.Type),
		Description:    m.Description,
		ReferenceID:    m.ReferenceID,
		RunningBalance: m.RunningBalance,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal{
		WithdrawalID:  m.WithdrawalID,
		GuideID:       m.GuideID,
		Amount:        m.Amount,
		Method:        domain.WithdrawalMethod(m.Method),
		MethodDetails: m.MethodDetails,
		Status:        domain.WithdrawalStatus(m.Status),
		AdminNote:     m.AdminNote.String,
		CreatedAt:     m.CreatedAt.UTC(),
		ProcessedAt:   timePtr(m.ProcessedAt),
		ProcessedBy:   stringPtr(m.ProcessedBy),
		GuideName:     m.GuideName.String,
	}
}
