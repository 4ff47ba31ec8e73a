package store

import (
	"context"
	"errors"
	"time"

	"finance-guru/models"

	"gorm.io/gorm"
)

// PendingBills 未支付账单，按到期日升序
func (s *Store) PendingBills(ctx context.Context, userID uint) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.conn(ctx).
		Where("user_id = ? AND status = ?", userID, models.BillPending).
		Order("due_date ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		return nil, wrap("pending bills", err)
	}
	return bills, nil
}

// FindBill 查找用户的账单
func (s *Store) FindBill(ctx context.Context, userID, id uint) (*models.Bill, error) {
	var b models.Bill
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&b).Error; err != nil {
		return nil, wrap("find bill", err)
	}
	return &b, nil
}

// PayBill 标记账单已支付；周期账单在同一事务内生成下一期
// 只有 pending 状态的账单能被支付，并发重复支付时条件更新影响 0 行返回 ErrInvalidBillTransition
func (s *Store) PayBill(ctx context.Context, bill *models.Bill, paidOn time.Time) (*models.Bill, error) {
	if bill.Status != models.BillPending {
		return nil, ErrInvalidBillTransition
	}
	paidDate := models.Today(paidOn)
	status := bill.PaidStatus()
	next := bill.NextOccurrence()

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Bill{}).
			Where("id = ? AND user_id = ? AND status = ?", bill.ID, bill.UserID, models.BillPending).
			Updates(map[string]interface{}{"status": status, "paid_date": paidDate})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidBillTransition
		}
		if next != nil {
			return tx.Create(next).Error
		}
		return nil
	})
	if errors.Is(err, ErrInvalidBillTransition) {
		return nil, err
	}
	if err != nil {
		return nil, wrap("pay bill", err)
	}

	bill.Status = status
	bill.PaidDate = &paidDate
	return next, nil
}

// UnpayBill 撤销支付，仅允许 paid -> pending；已滚动出下一期的账单不可撤销
func (s *Store) UnpayBill(ctx context.Context, bill *models.Bill) error {
	if bill.Status != models.BillPaid {
		return ErrInvalidBillTransition
	}
	res := s.conn(ctx).Model(&models.Bill{}).
		Where("id = ? AND user_id = ? AND status = ?", bill.ID, bill.UserID, models.BillPaid).
		Updates(map[string]interface{}{"status": models.BillPending, "paid_date": nil})
	if res.Error != nil {
		return wrap("unpay bill", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidBillTransition
	}
	bill.Status = models.BillPending
	bill.PaidDate = nil
	return nil
}
