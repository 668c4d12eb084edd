package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vetcard/internal/middleware"
	"github.com/BruksfildServices01/vetcard/internal/storage"
)

type VisitorStores interface {
	For(visitorID string) *storage.Visitor
}

func currentVisitor(c *gin.Context, stores VisitorStores) *storage.Visitor {
	return stores.For(middleware.VisitorID(c))
}
