package cdn

import (
	"context"
	"time"

	"github.com/andyle182810/zenlayercloud-sdk-go/pagination"
	"github.com/andyle182810/zenlayercloud-sdk-go/zcsdk"
)

type CertificateInfo struct {
	CertificateID    *string   `json:"certificateId,omitempty"`
	CertificateLabel string    `json:"certificateLabel"`
	Common           string    `json:"common"`
	Fingerprint      string    `json:"fingerprint"`
	Issuer           string    `json:"issuer"`
	Sans             []string  `json:"sans"`
	Algorithm        string    `json:"algorithm"`
	CreateTime       time.Time `json:"createTime"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Expired          bool      `json:"expired"`
	ResourceGroupID  *string   `json:"resourceGroupId,omitempty"`
}

type DescribeCertificatesRequest struct {
	CertificateIDs   []string `json:"certificateIds,omitempty"`
	CertificateLabel *string  `json:"certificateLabel,omitempty"`
	San              *string  `json:"san,omitempty"`
	ResourceGroupID  *string  `json:"resourceGroupId,omitempty"`
	Expired          *bool    `json:"expired,omitempty"`
	PageSize         *int     `json:"pageSize,omitempty" validate:"omitempty,min=1,max=1000"`
	PageNum          *int     `json:"pageNum,omitempty"  validate:"omitempty,min=1"`
}

type DescribeCertificatesResponse struct {
	TotalCount int               `json:"totalCount"`
	DataSet    []CertificateInfo `json:"dataSet"`
}

type CreateCertificateRequest struct {
	CertificateContent string  `json:"certificateContent"         validate:"required"`
	CertificateKey     string  `json:"certificateKey"             validate:"required"`
	CertificateLabel   *string `json:"certificateLabel,omitempty"`
	San                *string `json:"san,omitempty"`
	ResourceGroupID    *string `json:"resourceGroupId,omitempty"`
}

type CreateCertificateResponse struct {
	CertificateID string `json:"certificateId"`
}

type ModifyCertificateRequest struct {
	CertificateID      string `json:"certificateId"      validate:"required"`
	CertificateContent string `json:"certificateContent" validate:"required"`
	CertificateKey     string `json:"certificateKey"     validate:"required"`
}

type ModifyCertificateResponse struct {
	CertificateID string `json:"certificateId"`
}

type DeleteCertificateRequest struct {
	CertificateID string `json:"certificateId" validate:"required"`
}

type DeleteCertificateResponse struct {
	RequestID string `json:"requestId"`
}

func (c *Client) DescribeCertificates(
	ctx context.Context,
	req *DescribeCertificatesRequest,
) (*zcsdk.Envelope[DescribeCertificatesResponse], error) {
	return invoke[DescribeCertificatesResponse](ctx, c, "DescribeCertificates", req)
}

func (c *Client) CreateCertificate(
	ctx context.Context,
	req *CreateCertificateRequest,
) (*zcsdk.Envelope[CreateCertificateResponse], error) {
	return invoke[CreateCertificateResponse](ctx, c, "CreateCertificate", req)
}

func (c *Client) ModifyCertificate(
	ctx context.Context,
	req *ModifyCertificateRequest,
) (*zcsdk.Envelope[ModifyCertificateResponse], error) {
	return invoke[ModifyCertificateResponse](ctx, c, "ModifyCertificate", req)
}

func (c *Client) DeleteCertificate(
	ctx context.Context,
	req *DeleteCertificateRequest,
) (*zcsdk.Envelope[DeleteCertificateResponse], error) {
	return invoke[DeleteCertificateResponse](ctx, c, "DeleteCertificate", req)
}

// DescribeAllCertificates pages through DescribeCertificates with the filters
// of req. PageNum in req is ignored; PageSize sets the page length.
func (c *Client) DescribeAllCertificates(
	ctx context.Context,
	req *DescribeCertificatesRequest,
) ([]CertificateInfo, error) {
	filter := DescribeCertificatesRequest{}
	if req != nil {
		filter = *req
	}

	pageSize := 0
	if filter.PageSize != nil {
		pageSize = *filter.PageSize
	}

	return pagination.Collect[CertificateInfo](ctx, pageSize,
		func(ctx context.Context, pageNum, pageSize int) ([]CertificateInfo, int, error) {
			page := filter
			page.PageNum = &pageNum
			page.PageSize = &pageSize

			env, err := c.DescribeCertificates(ctx, &page)
			if err != nil {
				return nil, 0, err
			}

			if !env.HasResponse() {
				return nil, 0, nil
			}

			return env.Response.DataSet, env.Response.TotalCount, nil
		})
}
