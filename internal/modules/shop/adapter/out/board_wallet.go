package out

import (
	"context"

	"lifeos/internal/modules/board/dto"
	boardin "lifeos/internal/modules/board/port/in"
	"lifeos/internal/modules/shop/domain"
	shopout "lifeos/internal/modules/shop/port/out"
)

// BoardWallet reads the board's displayed profile and debits it through the
// board's optimistic profile patch.
type BoardWallet struct {
	board boardin.Usecase
}

func NewBoardWallet(board boardin.Usecase) shopout.Wallet {
	return &BoardWallet{board: board}
}

func (w *BoardWallet) Sync(ctx context.Context) error {
	_, err := w.board.RefreshProfile(ctx)
	return err
}

func (w *BoardWallet) Current() (domain.Wallet, bool) {
	snap := w.board.Snapshot()
	if !snap.HasProfile {
		return domain.Wallet{}, false
	}
	return wallet(snap.Profile), true
}

func (w *BoardWallet) Debit(ctx context.Context, xp int, inventory []string) (domain.Wallet, error) {
	if inventory == nil {
		inventory = []string{}
	}
	p, err := w.board.PatchProfile(ctx, dto.ProfilePatchInput{XP: &xp, InventoryKeys: inventory})
	if err != nil {
		return domain.Wallet{}, err
	}
	return wallet(p), nil
}

func wallet(p dto.ProfileOutput) domain.Wallet {
	return domain.Wallet{XP: p.XP, Level: p.Level, Streak: p.Streak, Inventory: p.Inventory}
}
