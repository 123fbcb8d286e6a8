package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/httputil"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.Use(SessionMiddleware(tokens))

	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Transaction{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Description	Records a new transaction. Personal transactions store the account label verbatim. Household transactions go into the shared pool and store the owner's display name instead, so account details never cross household boundaries.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionCreate	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	user := actor(c)

	var request TransactionCreate
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	if request.Kind != models.KindExpense && request.Kind != models.KindIncome {
		s := models.ErrKindInvalid.Error()
		c.JSON(status(models.ErrKindInvalid), TransactionResponse{Error: &s})
		return
	}

	amount, err := models.SignedAmount(request.Kind, request.Magnitude)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	transaction := request.model()
	transaction.Amount = amount
	transaction.OwnerID = user.ID

	if request.Scope == "" {
		request.Scope = ScopePersonal
	}

	switch request.Scope {
	case ScopePersonal:
		// account label stays verbatim
	case ScopeHousehold:
		if user.HouseholdID == nil {
			s := models.ErrNoHousehold.Error()
			c.JSON(status(models.ErrNoHousehold), TransactionResponse{Error: &s})
			return
		}

		transaction.HouseholdID = user.HouseholdID
		transaction.Account = user.DisplayName
	default:
		s := models.ErrScopeInvalid.Error()
		c.JSON(status(models.ErrScopeInvalid), TransactionResponse{Error: &s})
		return
	}

	err = models.DB.Create(&transaction).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Get transactions
// @Description	Returns the authenticated user's transactions, or the household's shared ledger
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			category	query	string	false	"Filter by category, glob patterns supported"
// @Param			merchant	query	string	false	"Filter by merchant"
// @Param			account		query	string	false	"Filter by account label"
// @Param			kind		query	string	false	"Only 'expense' or only 'income' transactions"
// @Param			household	query	bool	false	"List the household's shared ledger instead of own transactions"
// @Param			offset		query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	user := actor(c)

	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("date DESC")
	if filter.Household {
		if user.HouseholdID == nil {
			s := models.ErrNoHousehold.Error()
			c.JSON(status(models.ErrNoHousehold), TransactionListResponse{Error: &s})
			return
		}

		q = q.Where("household_id = ?", user.HouseholdID)
	} else {
		q = q.Where("household_id IS NULL").Where("owner_id = ?", user.ID)
	}

	switch filter.Kind {
	case "":
	case models.KindExpense:
		q = q.Where("amount < 0")
	case models.KindIncome:
		q = q.Where("amount >= 0")
	default:
		s := models.ErrKindInvalid.Error()
		c.JSON(status(models.ErrKindInvalid), TransactionListResponse{Error: &s})
		return
	}

	q = stringFilters(q, setFields, "", filter.Merchant, filter.Account)

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	// The category filter globs, which SQL cannot do for us
	if filter.Category != "" {
		matching := make([]models.Transaction, 0, len(transactions))
		for _, transaction := range transactions {
			if glob.Glob(filter.Category, transaction.Category) {
				matching = append(matching, transaction)
			}
		}
		transactions = matching
	}

	total := int64(len(transactions))

	// Pagination happens after the glob filter so that offsets stay stable
	if int(filter.Offset) < len(transactions) {
		transactions = transactions[filter.Offset:]
	} else {
		transactions = transactions[:0]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction. Household members see all transactions of their shared pool.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		401	{object}	httpError
// @Failure		403	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	if !transaction.CanRead(user) {
		s := models.ErrNotAuthorized.Error()
		c.JSON(status(models.ErrNotAuthorized), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates a transaction. Only values to be updated need to be specified. The write filters on both id and owner in one statement, so for anyone but the owner the transaction does not exist.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	bodyFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	changes := data.model()

	// Kind and magnitude are not stored, they recombine with the current
	// values into the signed amount
	var kindSet, magnitudeSet bool

	updateFields := make([]any, 0, len(bodyFields))
	for _, field := range bodyFields {
		switch field {
		case "Kind":
			kindSet = true
			continue

		case "Magnitude":
			magnitudeSet = true
			continue

		// The account label of household transactions stays redacted
		case "Account":
			if transaction.HouseholdID != nil {
				continue
			}
		}

		updateFields = append(updateFields, field)
	}

	if kindSet || magnitudeSet {
		kind := models.KindIncome
		if transaction.Amount.IsNegative() {
			kind = models.KindExpense
		}
		magnitude := transaction.Amount.Abs()

		if kindSet {
			kind = data.Kind
		}
		if magnitudeSet {
			magnitude = data.Magnitude
		}

		if kind != models.KindExpense && kind != models.KindIncome {
			s := models.ErrKindInvalid.Error()
			c.JSON(status(models.ErrKindInvalid), TransactionResponse{Error: &s})
			return
		}

		changes.Amount, err = models.SignedAmount(kind, magnitude)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TransactionResponse{Error: &s})
			return
		}

		updateFields = append(updateFields, "Amount")
	}

	// Nothing left to write when the only change was a redacted account
	// label. Ownership still decides what the caller gets to see.
	if len(updateFields) == 0 {
		if transaction.OwnerID != user.ID {
			s := models.ErrTransactionNotFound.Error()
			c.JSON(status(models.ErrTransactionNotFound), TransactionResponse{Error: &s})
			return
		}

		r := newTransaction(c, transaction)
		c.JSON(http.StatusOK, TransactionResponse{Data: &r})
		return
	}

	err = transaction.UpdateOwned(models.DB, user, updateFields, changes)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	r := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction. The delete filters on both id and owner in one statement, so for anyone but the owner the transaction does not exist.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transaction := models.Transaction{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}
	err = transaction.DeleteOwned(models.DB, user)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
